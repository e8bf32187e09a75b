package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

type fakeTerminal struct {
	mu       sync.Mutex
	label    string
	output   bytes.Buffer
	inputs   [][]byte
	notices  []string
	out      io.Writer
	geometry domain.Geometry
	fits     int
	disposed int
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disposed > 0 {
		return 0, errors.New("disposed")
	}
	f.output.Write(p)
	if f.out != nil {
		return f.out.Write(p)
	}
	return len(p), nil
}

func (f *fakeTerminal) RecordInput(p []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, append([]byte(nil), p...))
}

func (f *fakeTerminal) Notice(_ ports.NoticeLevel, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, text)
}

func (f *fakeTerminal) Attach(out io.Writer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = out
	_, _ = out.Write(f.output.Bytes())
}

func (f *fakeTerminal) Detach() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.out = nil
}

func (f *fakeTerminal) Fit(geom domain.Geometry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if geom.Valid() {
		f.geometry = geom
		f.fits++
	}
}

func (f *fakeTerminal) Geometry() domain.Geometry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.geometry
}

func (f *fakeTerminal) Dispose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disposed++
	f.out = nil
}

func (f *fakeTerminal) Disposed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposed > 0
}

func (f *fakeTerminal) attached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out != nil
}

func (f *fakeTerminal) noticeList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.notices...)
}

func (f *fakeTerminal) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.output.String()
}

func (f *fakeTerminal) disposeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposed
}

func (f *fakeTerminal) fitCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fits
}

type fakeFactory struct {
	mu        sync.Mutex
	terminals []*fakeTerminal
	err       error
}

func (f *fakeFactory) NewTerminal(label string) (ports.Terminal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	term := &fakeTerminal{label: label}
	f.terminals = append(f.terminals, term)
	return term, nil
}

func (f *fakeFactory) last() *fakeTerminal {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.terminals) == 0 {
		return nil
	}
	return f.terminals[len(f.terminals)-1]
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeViewport struct {
	mu          sync.Mutex
	size        domain.Geometry
	clears      int
	placeholder string
	output      syncBuffer
	resizes     chan domain.Geometry
}

func newFakeViewport(size domain.Geometry) *fakeViewport {
	return &fakeViewport{size: size, resizes: make(chan domain.Geometry, 16)}
}

func (v *fakeViewport) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clears++
	v.placeholder = ""
}

func (v *fakeViewport) Output() io.Writer {
	return &v.output
}

func (v *fakeViewport) Size() domain.Geometry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

func (v *fakeViewport) setSize(geom domain.Geometry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.size = geom
}

func (v *fakeViewport) Placeholder(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.placeholder = text
}

func (v *fakeViewport) currentPlaceholder() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.placeholder
}

func (v *fakeViewport) Resizes() <-chan domain.Geometry {
	return v.resizes
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(_ ports.NoticeLevel, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
}

func (n *fakeNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type inbound struct {
	frame ports.Frame
	err   error
}

type fakeConn struct {
	url      string
	mu       sync.Mutex
	sent     []ports.Frame
	sendErr  error
	closed   bool
	code     int
	incoming chan inbound
}

func newFakeConn(url string) *fakeConn {
	return &fakeConn{url: url, incoming: make(chan inbound, 16)}
}

func (c *fakeConn) Send(frame ports.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("closed")
	}
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, ports.Frame{Kind: frame.Kind, Payload: append([]byte(nil), frame.Payload...)})
	return nil
}

func (c *fakeConn) Receive(ctx context.Context) (ports.Frame, error) {
	select {
	case <-ctx.Done():
		return ports.Frame{}, ctx.Err()
	case msg := <-c.incoming:
		return msg.frame, msg.err
	}
}

func (c *fakeConn) Close(code int, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.code = code
	return nil
}

func (c *fakeConn) serverData(text string) {
	c.incoming <- inbound{frame: ports.Frame{Kind: ports.FrameData, Payload: []byte(text)}}
}

func (c *fakeConn) serverClose(code int) {
	c.incoming <- inbound{err: &ports.CloseError{Code: code}}
}

func (c *fakeConn) serverError(err error) {
	c.incoming <- inbound{err: err}
}

func (c *fakeConn) frames() []ports.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ports.Frame(nil), c.sent...)
}

func (c *fakeConn) dataSent() []string {
	var out []string
	for _, frame := range c.frames() {
		if frame.Kind == ports.FrameData {
			out = append(out, string(frame.Payload))
		}
	}
	return out
}

func (c *fakeConn) controlSent() []string {
	var out []string
	for _, frame := range c.frames() {
		if frame.Kind == ports.FrameControl {
			out = append(out, string(frame.Payload))
		}
	}
	return out
}

func (c *fakeConn) isClosed() (bool, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed, c.code
}

type fakeDialer struct {
	mu    sync.Mutex
	conns chan *fakeConn
	fail  map[string]error
	hold  chan struct{}
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{conns: make(chan *fakeConn, 16), fail: map[string]error{}}
}

func (d *fakeDialer) Dial(ctx context.Context, url string) (ports.Conn, error) {
	d.mu.Lock()
	err := d.fail[url]
	hold := d.hold
	d.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	conn := newFakeConn(url)
	d.conns <- conn
	return conn, nil
}

func (d *fakeDialer) failFor(url string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail[url] = err
}

type fakeAPI struct {
	mu         sync.Mutex
	next       int
	requests   []ports.ConnectRequest
	deleted    []domain.SessionID
	connectErr error
	deleteErr  error
	fixedID    domain.SessionID
}

func (a *fakeAPI) Connect(_ context.Context, req ports.ConnectRequest) (ports.ConnectResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = append(a.requests, req)
	if a.connectErr != nil {
		return ports.ConnectResponse{}, a.connectErr
	}
	if a.fixedID != "" {
		return ports.ConnectResponse{SessionID: a.fixedID}, nil
	}
	a.next++
	return ports.ConnectResponse{SessionID: domain.SessionID(fmt.Sprintf("s-%d", a.next))}, nil
}

func (a *fakeAPI) DeleteSession(_ context.Context, id domain.SessionID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, id)
	return a.deleteErr
}

func (a *fakeAPI) SocketURL(_ context.Context, resp ports.ConnectResponse) (string, error) {
	return "ws://test/webssh/ws/" + string(resp.SessionID), nil
}

func (a *fakeAPI) deletedIDs() []domain.SessionID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.SessionID(nil), a.deleted...)
}

func (a *fakeAPI) connectRequests() []ports.ConnectRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.ConnectRequest(nil), a.requests...)
}
