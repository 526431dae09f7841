package observer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/akinfelami/pico-mdr/engine"
	"github.com/akinfelami/pico-mdr/parameter"
)

const maxMessageSize = 8192

var upgrader = websocket.Upgrader{}

// ErrPongDeadlineExceeded ends a client that stopped answering pings
var ErrPongDeadlineExceeded = errors.New("client disconnect, pong deadline exceeded")

// client publishes snapshots to one websocket peer
// gorilla allows one concurrent writer, so data frames go through writeMu
type client struct {
	ws           *websocket.Conn
	writeMu      sync.Mutex
	snapshot     func() engine.Snapshot
	publishEvery time.Duration
	lastPong     atomic.Int64
}

func newClient(w http.ResponseWriter, r *http.Request, snapshot func() engine.Snapshot, publishEvery time.Duration) (*client, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	ws.SetReadLimit(maxMessageSize)

	cli := &client{
		ws:           ws,
		snapshot:     snapshot,
		publishEvery: publishEvery,
	}
	cli.lastPong.Store(time.Now().UnixNano())
	ws.SetPongHandler(func(string) error {
		cli.lastPong.Store(time.Now().UnixNano())
		return nil
	})
	return cli, nil
}

// Sync runs the read, ping and publish routines until the peer leaves or ctx ends
// A clean disconnect returns nil
func (cli *client) Sync(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return cli.readMessages()
	})
	group.Go(func() error {
		return cli.pingPong(groupCtx)
	})
	group.Go(func() error {
		return cli.publish(groupCtx)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		cli.close()
		return nil
	})

	err := group.Wait()
	if ctx.Err() != nil || isClosure(err) {
		return nil
	}
	return err
}

// readMessages drains the peer so control frames are processed; any read error is permanent
func (cli *client) readMessages() error {
	for {
		if _, _, err := cli.ws.ReadMessage(); err != nil {
			return err
		}
	}
}

func (cli *client) pingPong(ctx context.Context) error {
	pinger := channerics.NewTicker(ctx.Done(), parameter.ObserverPingInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			since := time.Since(time.Unix(0, cli.lastPong.Load()))
			if since > parameter.ObserverPongWait {
				return ErrPongDeadlineExceeded
			}
			deadline := time.Now().Add(parameter.ObserverWriteWait)
			if err := cli.ws.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		}
	}
}

// publish sends the first snapshot at once, then one per interval
func (cli *client) publish(ctx context.Context) error {
	if err := cli.send(); err != nil {
		return err
	}
	ticks := channerics.NewTicker(ctx.Done(), cli.publishEvery)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			if err := cli.send(); err != nil {
				return err
			}
		}
	}
}

func (cli *client) send() error {
	snap := cli.snapshot()

	cli.writeMu.Lock()
	defer cli.writeMu.Unlock()

	if err := cli.ws.SetWriteDeadline(time.Now().Add(parameter.ObserverWriteWait)); err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}
	if err := cli.ws.WriteJSON(snap); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	return nil
}

// close says goodbye and drops the connection, which unblocks readMessages
func (cli *client) close() {
	_ = cli.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(parameter.ObserverWriteWait))
	_ = cli.ws.Close()
}

func isClosure(err error) bool {
	return err != nil && websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived)
}
