package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregLibert/hce/pkg/hce"
	"github.com/gregLibert/hce/pkg/tlv"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, *hce.Queue) {
	t.Helper()
	q := hce.NewQueue(8)
	svc, err := hce.NewService(hce.DefaultConfig(), hce.WithNotifier(q))
	require.NoError(t, err)

	var out bytes.Buffer
	return &shell{svc: svc, out: &out}, &out, q
}

// newTestReader feeds input to the shell as if it were piped on stdin.
func newTestReader(t *testing.T, input string) *readline.Instance {
	t.Helper()
	rl, err := newLineReader(strings.NewReader(input), io.Discard, io.Discard, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rl.Close() })
	return rl
}

func TestLineReader_Piped(t *testing.T) {
	rl := newTestReader(t, "00A4\nports\n")

	line, err := rl.Readline()
	require.NoError(t, err)
	assert.Equal(t, "00A4", line)

	line, err = rl.Readline()
	require.NoError(t, err)
	assert.Equal(t, "ports", line)

	_, err = rl.Readline()
	assert.ErrorIs(t, err, io.EOF)
}

func TestShell_Session(t *testing.T) {
	sh, out, q := newTestShell(t)

	input := strings.Join([]string{
		"# comment",
		"",
		"00 A4 04 00 07 A0 00 DA DA DA DA DA",
		"put 5 50 04 56 49 53 41",
		"ports",
		"00A4040507A000DADADADADA",
		"00A4040507A000DADADADADA",
		"rm 5",
		"bogus",
	}, "\n") + "\n"
	require.NoError(t, sh.run(newTestReader(t, input)))

	text := out.String()
	assert.Contains(t, text, ">> 00 A4 04 00 07 A0 00 DA DA DA DA DA\n<< [9000] SW_NO_ERROR\n")
	assert.Contains(t, text, "ports: [5]\n")
	assert.Contains(t, text, "<< [9000] SW_NO_ERROR\n   50: 56495341 (\"VISA\")\n")
	assert.Equal(t, 1, strings.Count(text, "VISA"), "response served more than once")
	assert.Contains(t, text, "!! unknown command: \"bogus\"\n")

	q.Close()
	var forwarded []hce.Notification
	for n := range q.C() {
		forwarded = append(forwarded, n)
	}
	require.Len(t, forwarded, 2)
	assert.Equal(t, hce.Port(5), forwarded[0].Port)
}

func TestShell_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"Put without port", "put"},
		{"Put bad port", "put x 01"},
		{"Put out of range", "put 300 01"},
		{"Put bad hex", "put 1 0"},
		{"Rm without port", "rm"},
		{"Config missing flags", "config aid=F001020304"},
		{"Config bad pair", "config permanent"},
		{"Config unknown key", "config speed=1"},
		{"Config bad bool", "config permanent=maybe listen=false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, _, _ := newTestShell(t)
			assert.Error(t, sh.handle(tt.line))
		})
	}
}

func TestShell_Config(t *testing.T) {
	sh, out, _ := newTestShell(t)

	require.NoError(t, sh.handle("config permanent=true listen=false aid=F0010203040506 CLA=80 ins=ca"))

	cfg := sh.svc.Config()
	assert.Equal(t, tlv.Hex("F0 01 02 03 04 05 06"), cfg.AID)
	assert.Equal(t, byte(0x80), cfg.CLA)
	assert.Equal(t, byte(0xCA), cfg.INS)
	assert.True(t, cfg.PermanentResponses)

	require.NoError(t, sh.handle("nfc"))
	assert.Contains(t, out.String(), "nfc: NotSupported\n")
}
