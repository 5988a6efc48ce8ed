package bind_group_provider

// BufferWrite is one staged GPU buffer update. The scene batches these per
// tick (camera uniform plus one model matrix per arm object) and hands them
// to the renderer in a single WriteBuffers call.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
