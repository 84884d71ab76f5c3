package channel

type channelError string

var _ error = channelError("")

func (err channelError) Error() string {
	return string(err)
}

const (
	ErrInvalidCapacity = channelError("capacity must be at least 1")
	ErrNilAllocator    = channelError("allocator is mandatory")
)
