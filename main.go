// Command hce drives an emulated card from the reader side.
//
// It connects to a PC/SC reader, selects the application AID and then sends
// one application command per requested port, printing every exchange.
//
// Usage:
//
//	hce [flags]
//
// Flags:
//
//	-reader int         Reader index (default 0)
//	-aid string         Application AID in hex (default "A000DADADADADA")
//	-cla string         Application class byte (default "00")
//	-ins string         Application instruction byte (default "A4")
//	-ports string       Comma separated ports to address (default "0")
//	-log-level string   Log level: debug, info, warn, error (default from HCE_LOG_LEVEL, else "info")
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gregLibert/hce/pkg/hce"
	"github.com/gregLibert/hce/pkg/iso7816"
	"github.com/gregLibert/hce/pkg/pcsc"
	"github.com/gregLibert/hce/pkg/tlv"
)

func main() {
	readerIndex := flag.Int("reader", 0, "Reader index")
	aidHex := flag.String("aid", fmt.Sprintf("%X", hce.DefaultAID), "Application AID in hex")
	claHex := flag.String("cla", "00", "Application class byte")
	insHex := flag.String("ins", "A4", "Application instruction byte")
	portList := flag.String("ports", "0", "Comma separated ports to address")
	logLevel := flag.String("log-level", os.Getenv("HCE_LOG_LEVEL"), "Log level: debug, info, warn, error")
	flag.Parse()

	logger := newLogger(*logLevel)
	defer func() { _ = logger.Sync() }()

	// --- 1. Arguments ---
	aid, err := tlv.ParseHex(*aidHex)
	if err != nil {
		logger.Fatal("invalid AID", zap.Error(err))
	}
	cls, ins, err := parseProtocol(*claHex, *insHex)
	if err != nil {
		logger.Fatal("invalid protocol bytes", zap.Error(err))
	}
	ports, err := parsePorts(*portList)
	if err != nil {
		logger.Fatal("invalid ports", zap.Error(err))
	}

	// --- 2. Hardware Setup ---
	session, err := pcsc.Connect(*readerIndex, logger.Named("pcsc"))
	if err != nil {
		logger.Fatal("connecting to card", zap.Error(err))
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("closing session", zap.Error(err))
		}
	}()

	fmt.Printf(">> Using reader: %s\n", session.Reader)

	client := iso7816.NewClient(session, logger.Named("apdu"))

	// --- 3. Execution Flow ---
	if !step1SelectApplication(client, aid, logger) {
		fmt.Println("\n>> Application not selected, ports skipped.")
		return
	}
	step2AddressPorts(client, cls, ins, aid, ports, logger)

	fmt.Println("\n>> Exchange Finished")
}

// =========================================================================
// Helper Functions
// =========================================================================

// step1SelectApplication sends SELECT by DF name for aid.
func step1SelectApplication(client *iso7816.Client, aid []byte, logger *zap.Logger) bool {
	fmt.Println("\n=============================================")
	fmt.Printf(" Step 1: SELECT AID %s\n", tlv.Spaced(aid))
	fmt.Println("=============================================")

	cls, _ := iso7816.NewClass(0x00)
	trace, err := client.Send(iso7816.SelectByAID(cls, aid))
	if err != nil {
		logger.Error("select failed", zap.Error(err))
		return false
	}

	fmt.Println(trace.Describe())
	return trace.IsSuccess()
}

// step2AddressPorts sends one application command per port. The data field
// carries the AID so the emulated card accepts the length.
func step2AddressPorts(client *iso7816.Client, cls iso7816.Class, ins iso7816.Instruction, aid []byte, ports []byte, logger *zap.Logger) {
	fmt.Println("\n=============================================")
	fmt.Printf(" Step 2: ADDRESSING %d PORT(S)\n", len(ports))
	fmt.Println("=============================================")

	for _, port := range ports {
		fmt.Printf("\n[Port %d]\n", port)

		cmd := iso7816.NewCommandAPDU(cls, ins, byte(iso7816.SelectByDFName), port, aid, 0)
		trace, err := client.Send(cmd)
		if err != nil {
			logger.Error("transmission failed", zap.Uint8("port", port), zap.Error(err))
			continue
		}
		fmt.Println(trace.Describe())

		if sw := trace.Last().Response.Status; sw.IsError() {
			logger.Warn("port refused", zap.Uint8("port", port), zap.Stringer("status", sw))
		}
	}
}

func parseProtocol(claHex, insHex string) (iso7816.Class, iso7816.Instruction, error) {
	claByte, err := tlv.ParseHex(claHex)
	if err != nil || len(claByte) != 1 {
		return iso7816.Class{}, iso7816.Instruction{}, fmt.Errorf("cla %q is not one hex byte", claHex)
	}
	insByte, err := tlv.ParseHex(insHex)
	if err != nil || len(insByte) != 1 {
		return iso7816.Class{}, iso7816.Instruction{}, fmt.Errorf("ins %q is not one hex byte", insHex)
	}

	cls, err := iso7816.NewClass(claByte[0])
	if err != nil {
		return iso7816.Class{}, iso7816.Instruction{}, err
	}
	ins, err := iso7816.NewInstruction(iso7816.InsCode(insByte[0]))
	if err != nil {
		return iso7816.Class{}, iso7816.Instruction{}, err
	}
	return cls, ins, nil
}

func parsePorts(list string) ([]byte, error) {
	var ports []byte
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.ParseUint(field, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("port %q: %w", field, err)
		}
		ports = append(ports, byte(n))
	}
	return ports, nil
}

func newLogger(level string) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	switch strings.ToLower(level) {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
