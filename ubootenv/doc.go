// Package ubootenv reads and writes U-Boot environment blocks and the boot
// order they encode.
//
// # Block Format
//
// An environment block is exactly 8192 bytes:
//
//	[CRC32(4)][name=value\0]...[\0][0xFF padding]
//
// The CRC32 is the standard CRC-32 of everything after the CRC field,
// stored little-endian. A block may also arrive wrapped in an SIMG image;
// Parse unwraps it.
//
// # Boot Order
//
// The boot order is a view over bootcmd_default (or bootcmd0) written as a
// "; "-separated boot script:
//
//	env.SetBootOrder([]string{"disk1:2", "pxe", "retry"})
//	// bootcmd_default = "setenv bootdevice 1:2 && run bootcmd_sata; while true
//	// do
//	// run bootcmd_pxe
//	// sleep 1
//	// done"
//
// Scripts are handled as a small command tree (Run, SetEnv, Sequence,
// Reset, Retry, Raw) so both directions share one parser.
//
// # Usage
//
//	env, err := ubootenv.Parse(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	order, err := env.BootOrder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(order) // [disk pxe]
//
//	if err := env.SetBootOrder([]string{"pxe", "disk"}); err != nil {
//	    log.Fatal(err)
//	}
//	out, err := env.Bytes()
//
// # Error Handling
//
// Parse is lenient: the stored CRC32 is not checked and lines without '='
// are kept with an empty value. VerifyChecksum checks the CRC32 on demand.
// All other errors are typed; match them with errors.As.
package ubootenv
