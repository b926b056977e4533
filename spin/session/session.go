package session

import (
	"errors"
	"io"
	"sync"

	"github.com/allape/gogger"
	"github.com/allape/openspin/spin"
	"github.com/allape/openspin/spin/codec"
	"github.com/lucasb-eyer/go-colorful"
)

var l = gogger.New("spin.session")

// ErrBadEvent marks an unreadable client message, the session keeps going.
var ErrBadEvent = errors.New("bad event")

type MessageType string

const (
	MessageInit       MessageType = "init"
	MessageState      MessageType = "state"
	MessageFullscreen MessageType = "fullscreen"
)

type Message struct {
	Type            MessageType `json:"type"`
	U               int         `json:"u"`
	V               int         `json:"v"`
	Width           int         `json:"width,omitempty"`
	Height          int         `json:"height,omitempty"`
	Background      string      `json:"background,omitempty"`
	UCount          int         `json:"uCount,omitempty"`
	VCount          int         `json:"vCount,omitempty"`
	AllowFullscreen bool        `json:"allowFullscreen,omitempty"`
	Touch           bool        `json:"touch,omitempty"`
	ContentType     string      `json:"contentType,omitempty"`
}

// Client is one connected display. Frames go out as binary, messages as text.
type Client interface {
	io.Closer
	ReadEvent() (spin.InputEvent, error)
	WriteFrame(frame []byte) error
	WriteMessage(m Message) error
}

type Summary struct {
	ID      string `json:"id"`
	U       int    `json:"u"`
	V       int    `json:"v"`
	UCount  int    `json:"uCount"`
	VCount  int    `json:"vCount"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Total   int    `json:"total"`
	Loaded  int    `json:"loaded"`
	Failed  int    `json:"failed"`
	Clients int    `json:"clients"`
}

type Server struct {
	Viewer *spin.Viewer
	Codec  codec.Codec

	locker      sync.Locker
	peers       map[*peer]struct{}
	lastFrame   []byte
	unsubscribe func()
}

func New(viewer *spin.Viewer, c codec.Codec) *Server {
	s := &Server{
		Viewer: viewer,
		Codec:  c,
		locker: &sync.Mutex{},
		peers:  make(map[*peer]struct{}),
	}
	s.unsubscribe = viewer.Subscribe(s.onEvent)
	if viewer.Rendered() != nil {
		u, v := viewer.State()
		s.onEvent(spin.Event{Kind: spin.EventFrame, U: u, V: v, Image: viewer.Surface().Snapshot()})
	}
	return s
}

func (s *Server) onEvent(e spin.Event) {
	switch e.Kind {
	case spin.EventFrame:
		frame, err := s.Codec.Encode(e.Image)
		if err != nil {
			l.Error().Println("encode frame:", err)
			return
		}

		state := Message{Type: MessageState, U: e.U, V: e.V}

		s.locker.Lock()
		s.lastFrame = frame
		for p := range s.peers {
			p.pushFrame(frame)
			p.pushMessage(state)
		}
		s.locker.Unlock()
	case spin.EventFullscreen:
		s.broadcast(Message{Type: MessageFullscreen, U: e.U, V: e.V})
	}
}

func (s *Server) broadcast(m Message) {
	s.locker.Lock()
	defer s.locker.Unlock()
	for p := range s.peers {
		p.pushMessage(m)
	}
}

func (s *Server) LastFrame() []byte {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.lastFrame
}

func (s *Server) InitMessage() Message {
	options := s.Viewer.Options()
	u, v := s.Viewer.State()

	background := ""
	if c, ok := colorful.MakeColor(options.BackgroundColor); ok {
		background = c.Hex()
	}

	return Message{
		Type:            MessageInit,
		U:               u,
		V:               v,
		Width:           options.ViewWidth,
		Height:          options.ViewHeight,
		Background:      background,
		UCount:          options.UCount,
		VCount:          options.VCount,
		AllowFullscreen: options.AllowFullscreen,
		Touch:           options.Touch,
		ContentType:     s.Codec.ContentType(),
	}
}

func (s *Server) Summary() Summary {
	options := s.Viewer.Options()
	u, v := s.Viewer.State()
	batch := s.Viewer.Batch()

	s.locker.Lock()
	clients := len(s.peers)
	s.locker.Unlock()

	return Summary{
		ID:      s.Viewer.ID,
		U:       u,
		V:       v,
		UCount:  options.UCount,
		VCount:  options.VCount,
		Width:   options.ViewWidth,
		Height:  options.ViewHeight,
		Total:   batch.Total(),
		Loaded:  batch.Loaded(),
		Failed:  batch.Failed(),
		Clients: clients,
	}
}

// HandleClient serves one client until it disconnects.
func (s *Server) HandleClient(client Client) error {
	err := client.WriteMessage(s.InitMessage())
	if err != nil {
		return err
	}

	p := newPeer(client)

	s.locker.Lock()
	s.peers[p] = struct{}{}
	if s.lastFrame != nil {
		p.pushFrame(s.lastFrame)
	}
	s.locker.Unlock()

	go p.run()

	defer func() {
		s.locker.Lock()
		delete(s.peers, p)
		s.locker.Unlock()
		p.stop()
	}()

	input := spin.NewInput(s.Viewer)

	for {
		e, err := client.ReadEvent()
		if err != nil {
			if errors.Is(err, ErrBadEvent) {
				l.Warn().Println(err)
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if input.Handle(e) == spin.ActionFullscreen {
			p.pushMessage(Message{Type: MessageFullscreen})
		}
	}
}

func (s *Server) Close() error {
	s.unsubscribe()

	s.locker.Lock()
	peers := make([]*peer, 0, len(s.peers))
	for p := range s.peers {
		peers = append(peers, p)
	}
	s.locker.Unlock()

	var errs []error
	for _, p := range peers {
		errs = append(errs, p.client.Close())
	}
	return errors.Join(errs...)
}
