package control

const defaultBuffer = 32

// Channel is a multi-producer, single-consumer command queue. Push and Poll
// are both non-blocking: a producer on the input thread is never held up by
// a slow consumer, and the engine's poll loop never waits on an empty queue.
type Channel struct {
	cmds chan Command
}

// NewChannel creates a channel with the default buffer size.
func NewChannel() *Channel {
	return &Channel{cmds: make(chan Command, defaultBuffer)}
}

// Push enqueues a command. When the buffer is full the command is dropped
// and Push reports false; the engine drains far faster than a human types,
// so drops only happen if the consumer is gone.
func (c *Channel) Push(cmd Command) bool {
	select {
	case c.cmds <- cmd:
		return true
	default:
		return false
	}
}

// Poll dequeues one command if any is pending.
func (c *Channel) Poll() (Command, bool) {
	select {
	case cmd := <-c.cmds:
		return cmd, true
	default:
		return 0, false
	}
}

// Len reports the number of pending commands.
func (c *Channel) Len() int {
	return len(c.cmds)
}
