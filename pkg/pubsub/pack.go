package pubsub

// Pack is the unit of exchange on a topic. Key routes/partitions the message,
// Msg carries an opaque payload.
type Pack struct {
	Key []byte
	Msg []byte
}
