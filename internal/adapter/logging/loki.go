package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

const lokiQueueSize = 1024

type LokiLogEntry struct {
	Streams []LokiStream `json:"streams"`
}

type LokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

type lokiLine struct {
	level zapcore.Level
	time  time.Time
	line  string
}

// lokiPusher ships encoded entries to Loki from a single goroutine. Entries
// are dropped when the queue is full.
type lokiPusher struct {
	url         string
	serviceName string
	httpClient  *http.Client

	entries chan lokiLine
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newLokiPusher(baseURL, serviceName string) *lokiPusher {
	p := &lokiPusher{
		url:         strings.TrimSuffix(baseURL, "/") + "/loki/api/v1/push",
		serviceName: serviceName,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		entries: make(chan lokiLine, lokiQueueSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go p.run()

	return p
}

func (p *lokiPusher) push(entry lokiLine) {
	select {
	case <-p.stop:
	case p.entries <- entry:
	default:
	}
}

func (p *lokiPusher) run() {
	defer close(p.done)

	for {
		select {
		case entry := <-p.entries:
			p.send(entry)
		case <-p.stop:
			for {
				select {
				case entry := <-p.entries:
					p.send(entry)
				default:
					return
				}
			}
		}
	}
}

func (p *lokiPusher) close() {
	p.once.Do(func() {
		close(p.stop)
	})

	<-p.done
}

func (p *lokiPusher) send(entry lokiLine) {
	body, err := json.Marshal(LokiLogEntry{
		Streams: []LokiStream{
			{
				Stream: map[string]string{
					"service": p.serviceName,
					"level":   entry.level.String(),
				},
				Values: [][]string{
					{fmt.Sprintf("%d", entry.time.UnixNano()), entry.line},
				},
			},
		},
	})

	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.httpClient.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))

	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)

	if err != nil {
		return
	}

	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)
}

// lokiCore is a zapcore.Core that encodes entries as JSON and hands them to
// a lokiPusher.
type lokiCore struct {
	zapcore.LevelEnabler
	enc    zapcore.Encoder
	pusher *lokiPusher
}

func newLokiCore(enc zapcore.Encoder, level zapcore.LevelEnabler, pusher *lokiPusher) *lokiCore {
	return &lokiCore{
		LevelEnabler: level,
		enc:          enc,
		pusher:       pusher,
	}
}

func (c *lokiCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &lokiCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		pusher:       c.pusher,
	}

	for _, field := range fields {
		field.AddTo(clone.enc)
	}

	return clone
}

func (c *lokiCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}

	return checked
}

func (c *lokiCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(entry, fields)

	if err != nil {
		return err
	}

	line := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()

	c.pusher.push(lokiLine{level: entry.Level, time: entry.Time, line: line})

	return nil
}

func (c *lokiCore) Sync() error {
	return nil
}
