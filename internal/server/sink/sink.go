// Package sink delivers encoded packets to the microcontroller transport.
package sink

// PacketSink receives encoded packets bound for the microcontroller. Write
// is called once per state tick; implementations must tolerate transient
// transport failures without losing the ability to accept later packets.
type PacketSink interface {
	Write(p []byte) error
	Close() error
}

// Discard drops packets. Used when no serial device is attached (bench
// mode): the bridge keeps encoding and logging but writes nowhere.
type Discard struct{}

func (Discard) Write([]byte) error { return nil }
func (Discard) Close() error       { return nil }
