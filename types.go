package wiretree

// Encodable is the write half of the codable capability. A type writes
// itself by requesting a container from the encoder and emitting its fields
// or its single value into it.
type Encodable interface {
	EncodeWire(e *Encoder) error
}

// Decodable is the read half. Implementations use a pointer receiver so the
// decoded state lands in the caller's value.
type Decodable interface {
	DecodeWire(d *Decoder) error
}

// Codable combines both halves. The engine never requires it; the split
// interfaces keep one-directional types honest.
type Codable interface {
	Encodable
	Decodable
}
