// Package comm provides L0 protocol support.
package comm

// L0 protocol is spoken between the L1 controller and the motor
// controller of the cart over a serial port. It is the compact protocol
// of the Pololu Simple Motor Controller: every command is one opcode
// byte followed by data bytes which only carry 7 bits each.
//
// There is no sequence number, acknowledgement or checksum. A command
// is fire-and-forget, and the only replies are the 2-byte words answering
// a variable read. Because replies are not tagged, a request and its
// reply must never be interleaved with another exchange: Channel
// serializes whole exchanges on the port.
//
// Producer: L1 controller
// Consumer: motor controller firmware
