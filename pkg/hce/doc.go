/*
Package hce implements the command-processing core of a Host Card Emulation service.

A contactless reader talks to the emulated card with short ISO 7816-4 command APDUs. The
Service decides, for each command, between three outcomes:

  - a fixed status word (application SELECT, or a command it does not accept),
  - the payload pre-configured for the addressed port followed by 90 00,
  - an empty 90 00, when nothing is configured for the port.

Valid commands are also forwarded to the host application through a Notifier unless the
service only listens to configured ports. Forwarding never waits for an answer; the host
reacts by configuring the response for the next exchange with PutResponse.

# Ports

Application commands reuse P2 as a port number. The data field has the length of the AID:

	CLA INS P1 PORT Lc(=len(AID)) DATA[len(AID)] [Le]

A response put on a port is served once and then removed, unless the service is configured
with PermanentResponses, in which case it stays until removed or replaced.

# Usage

	q := hce.NewQueue(0)
	svc, err := hce.NewService(hce.DefaultConfig(), hce.WithNotifier(q), hce.WithLogger(logger))
	if err != nil {
	    return err
	}
	go hce.NewStreamWriter(out).Run(ctx, q.C())

	_ = svc.PutResponse(5, []byte{0xCA, 0xFE})
	resp := svc.Process(rawCommand) // e.g. CA FE 90 00 for a command addressing port 5
*/
package hce
