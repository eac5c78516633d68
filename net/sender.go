package net

// Sender delivers encoded packets to one connection. It is implemented by the
// transport, which owns retries, ordering and backpressure for each channel.
type Sender interface {
	// SendPacket transmits data over the reliable ordered channel when reliable is
	// set, otherwise over the unreliable one. data must not be modified after the
	// call; fan-out hands the same slice to many senders. Bodies whose header has
	// the encrypted flag are sealed per connection, see SealPacket.
	SendPacket(data []byte, reliable bool) error
}

// Send encodes p and transmits it on its declared channel.
func Send(s Sender, p EncodablePacket) error {
	return s.SendPacket(EncodePacketFast(p), p.Reliable())
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(data []byte, reliable bool) error

func (f SenderFunc) SendPacket(data []byte, reliable bool) error {
	return f(data, reliable)
}
