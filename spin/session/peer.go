package session

import (
	"sync"
)

const messageBacklog = 16

// peer owns the writing side of a client.
// Only the latest frame is kept, older unsent frames are dropped.
type peer struct {
	client   Client
	frames   chan []byte
	messages chan Message
	done     chan struct{}
	stopOnce sync.Once
}

func newPeer(client Client) *peer {
	return &peer{
		client:   client,
		frames:   make(chan []byte, 1),
		messages: make(chan Message, messageBacklog),
		done:     make(chan struct{}),
	}
}

func (p *peer) pushFrame(frame []byte) {
	for {
		select {
		case p.frames <- frame:
			return
		default:
		}
		select {
		case <-p.frames:
		default:
		}
	}
}

func (p *peer) pushMessage(m Message) {
	select {
	case p.messages <- m:
	default:
		l.Warn().Println("message dropped, client too slow:", m.Type)
	}
}

func (p *peer) run() {
	for {
		// messages first, a fullscreen request should not wait for a frame
		select {
		case m := <-p.messages:
			if err := p.client.WriteMessage(m); err != nil {
				p.fail(err)
				return
			}
			continue
		default:
		}

		select {
		case <-p.done:
			return
		case m := <-p.messages:
			if err := p.client.WriteMessage(m); err != nil {
				p.fail(err)
				return
			}
		case frame := <-p.frames:
			if err := p.client.WriteFrame(frame); err != nil {
				p.fail(err)
				return
			}
		}
	}
}

func (p *peer) fail(err error) {
	l.Verbose().Println("write to client:", err)
	_ = p.client.Close()
}

func (p *peer) stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}
