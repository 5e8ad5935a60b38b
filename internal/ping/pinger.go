package ping

import (
	"context"
	"net"
	"os"
	"sync"
	"time"
)

const payloadSize = 32

// Pinger probes a host on its own timer, independent of the refresh
// interval. A successful probe invokes the callback; a failed one
// performs no update at all, so the last successful round-trip persists
// at the consumer until the next success.
type Pinger struct {
	period  time.Duration
	timeout time.Duration
	onRTT   func(time.Duration)

	mu     sync.Mutex
	host   string
	seq    uint16
	cancel context.CancelFunc
	done   chan struct{}

	id uint16
}

// New returns a stopped pinger. An empty host disables probing until
// SetHost supplies one.
func New(host string, period, timeout time.Duration, onRTT func(time.Duration)) *Pinger {
	return &Pinger{
		period:  period,
		timeout: timeout,
		onRTT:   onRTT,
		host:    host,
		id:      uint16(os.Getpid()),
	}
}

// Start launches the probe loop; idempotent.
func (p *Pinger) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop halts the loop and waits for the current probe to finish;
// idempotent.
func (p *Pinger) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// SetHost changes the probe target; empty disables probing.
func (p *Pinger) SetHost(host string) {
	p.mu.Lock()
	p.host = host
	p.mu.Unlock()
}

func (p *Pinger) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	p.probeOnce()
	ticker := time.NewTicker(p.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.probeOnce()
		}
	}
}

func (p *Pinger) probeOnce() {
	p.mu.Lock()
	host := p.host
	p.seq++
	seq := p.seq
	p.mu.Unlock()
	if host == "" {
		return
	}
	rtt, err := Probe(host, p.id, seq, p.timeout)
	if err != nil {
		return
	}
	p.onRTT(rtt)
}

// Probe performs one blocking echo exchange bounded by timeout.
func Probe(host string, id, seq uint16, timeout time.Duration) (time.Duration, error) {
	conn, err := net.DialTimeout("ip4:icmp", host, timeout)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if err := conn.SetDeadline(deadline); err != nil {
		return 0, err
	}

	req := EncodeEchoRequest(id, seq, make([]byte, payloadSize))
	start := time.Now()
	if _, err := conn.Write(req); err != nil {
		return 0, err
	}

	buf := make([]byte, 1500)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return 0, err
		}
		// Replies for other sessions share the raw socket; keep
		// reading until ours arrives or the deadline trips.
		if err := DecodeEchoReply(buf[:n], id, seq); err != nil {
			if time.Now().After(deadline) {
				return 0, err
			}
			continue
		}
		return time.Since(start), nil
	}
}
