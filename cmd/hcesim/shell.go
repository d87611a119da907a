package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/gregLibert/hce/pkg/hce"
	"github.com/gregLibert/hce/pkg/iso7816"
	"github.com/gregLibert/hce/pkg/tlv"
)

// errUnknownCommand is returned for a line that is neither a control word nor hex.
var errUnknownCommand = errors.New("unknown command")

// shell feeds input lines into the service. A line is either a raw command
// APDU in hex or one of the control words:
//
//	put <port> <hex>    set the response served on port
//	rm <port>           remove the response for port
//	ports               list ports holding a response
//	config key=value... reconfigure (permanent=, listen=, aid=, cla=, ins=)
//	nfc                 report the capability check
//
// Empty lines and lines starting with '#' are ignored.
type shell struct {
	svc *hce.Service
	out io.Writer
}

// newLineReader wraps in for the shell. The prompt and the terminal raw mode
// are only used when interactive; piped input is read line by line as is.
func newLineReader(in io.Reader, out, errOut io.Writer, interactive bool) (*readline.Instance, error) {
	cfg := &readline.Config{
		Stdin:          io.NopCloser(in),
		Stdout:         out,
		Stderr:         errOut,
		FuncIsTerminal: func() bool { return interactive },
	}
	if interactive {
		cfg.Prompt = "hce> "
		cfg.InterruptPrompt = "^C"
		cfg.EOFPrompt = "exit"
	} else {
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return rl, nil
}

// run handles every line read from rl until EOF. A failing line is reported
// on out and does not stop the loop; ^C clears the current line.
func (s *shell) run(rl *readline.Instance) error {
	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if err := s.handle(line); err != nil {
			fmt.Fprintf(s.out, "!! %v\n", err)
		}
	}
}

func (s *shell) handle(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "put":
		if len(fields) < 2 {
			return fmt.Errorf("usage: put <port> <hex>")
		}
		port, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		data, err := tlv.ParseHex(fields[2:]...)
		if err != nil {
			return err
		}
		return s.svc.PutResponse(port, data)

	case "rm":
		if len(fields) != 2 {
			return fmt.Errorf("usage: rm <port>")
		}
		port, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		return s.svc.RemoveResponse(port)

	case "ports":
		ports := s.svc.Responses().Ports()
		parts := make([]string, len(ports))
		for i, p := range ports {
			parts[i] = strconv.Itoa(int(p))
		}
		fmt.Fprintf(s.out, "ports: [%s]\n", strings.Join(parts, " "))
		return nil

	case "config":
		u, err := parseUpdate(fields[1:])
		if err != nil {
			return err
		}
		return s.svc.Configure(u)

	case "nfc":
		fmt.Fprintf(s.out, "nfc: %s\n", s.svc.CheckNfc())
		return nil
	}

	cmd, err := tlv.ParseHex(fields...)
	if err != nil {
		return fmt.Errorf("%w: %q", errUnknownCommand, fields[0])
	}
	s.exchange(cmd)
	return nil
}

// exchange processes cmd and prints both directions.
func (s *shell) exchange(cmd []byte) {
	resp := s.svc.Process(cmd)
	fmt.Fprintf(s.out, ">> %s\n", tlv.Spaced(cmd))

	r, err := iso7816.ParseResponseAPDU(resp)
	if err != nil {
		fmt.Fprintf(s.out, "<< %s\n", tlv.Spaced(resp))
		return
	}
	fmt.Fprintf(s.out, "<< %s\n", r.Status.Verbose())
	if len(r.Data) > 0 {
		for _, l := range strings.Split(tlv.Describe(r.Data), "\n") {
			fmt.Fprintf(s.out, "   %s\n", l)
		}
	}
}

// parseUpdate decodes key=value pairs into an Update.
func parseUpdate(args []string) (hce.Update, error) {
	var u hce.Update
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return hce.Update{}, fmt.Errorf("want key=value, got %q", arg)
		}

		key = strings.ToLower(key)
		switch key {
		case "permanent":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return hce.Update{}, fmt.Errorf("permanent: %w", err)
			}
			u.PermanentResponses = hce.Bool(b)
		case "listen":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return hce.Update{}, fmt.Errorf("listen: %w", err)
			}
			u.ListenOnlyConfiguredPorts = hce.Bool(b)
		case "aid":
			aid, err := tlv.ParseHex(value)
			if err != nil {
				return hce.Update{}, fmt.Errorf("aid: %w", err)
			}
			u.AID = aid
		case "cla", "ins":
			b, err := parseByte(key, value, 0)
			if err != nil {
				return hce.Update{}, err
			}
			if key == "cla" {
				u.CLA = hce.Byte(b)
			} else {
				u.INS = hce.Byte(b)
			}
		default:
			return hce.Update{}, fmt.Errorf("unknown key %q", key)
		}
	}
	return u, nil
}
