// Package motor drives the cart motor over the L0 protocol.
//
// A Driver owns the serial Channel of one motor controller. Commands are
// translated into frames and written in acceptance order; every accepted
// move command feeds the command watchdog, and a background task stops
// the motor once commands stop arriving.
package motor
