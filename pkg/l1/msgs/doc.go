// Package msgs defines the L1 messages exchanged with the cart controller.
//
// Commands (CartMove, CartStop, CartEnable, MotorInfoQuery) flow from the
// shell and the joystick to the cart controller, which replies CommandOK,
// CommandErr or MotorInfoReply. MotorInfo is published as an event at the
// telemetry interval for monitors.
//
// Every message is carried as a Typed packet: a registered type ID plus
// the protobuf encoding of the message. Type IDs are stable, new messages
// take new IDs.
package msgs
