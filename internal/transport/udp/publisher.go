// SPDX-License-Identifier: MIT
package udp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"soundhub/internal/device"
	applog "soundhub/internal/log"
)

// Publisher packs device inventory snapshots into a binary format and sends
// them over UDP using a Sender. Snapshots arrive via Update; a ticker paces
// the actual sends so a burst of inventory changes produces at most one
// packet per interval. It runs in a goroutine managed by Start and Stop.
type Publisher struct {
	sender   *Sender       // The underlying UDP sender instance.
	interval time.Duration // Minimum interval between packets.

	latest atomic.Pointer[device.Snapshot] // Most recent snapshot handed to Update.
	dirty  atomic.Bool                     // Set when latest has not been sent yet.

	ticker   *time.Ticker   // Ticker that paces packet sending.
	doneChan chan struct{}  // Signals the publisher goroutine to stop.
	stopOnce sync.Once      // Ensures the stop logic runs only once per Start/Stop cycle.
	wg       sync.WaitGroup // Waits for the publisher goroutine during Stop.
	mu       sync.Mutex     // Protects ticker and doneChan during Start/Stop.

	sequenceNum uint32 // Monotonically increasing sequence number for packets.

	// Reusable buffer for constructing the binary packet.
	packetBuffer *bytes.Buffer
}

// NewPublisher creates and initializes a Publisher. It requires a valid
// Sender. If the provided interval is invalid (<= 0), it defaults to 33ms.
func NewPublisher(interval time.Duration, sender *Sender) (*Publisher, error) {
	if sender == nil {
		return nil, fmt.Errorf("Publisher: UDP sender cannot be nil")
	}

	if interval <= 0 {
		interval = 33 * time.Millisecond
		applog.Warnf("Publisher: Invalid interval provided, defaulting to %s", interval)
	}

	applog.Infof("Publisher: Initializing (Interval: %s)", interval)

	return &Publisher{
		sender:       sender,
		interval:     interval,
		packetBuffer: new(bytes.Buffer),
	}, nil
}

// Update records a new inventory snapshot for publishing. The snapshot must
// not be mutated after the call. Safe for concurrent use.
func (p *Publisher) Update(snap *device.Snapshot) {
	if snap == nil {
		return
	}
	p.latest.Store(snap)
	p.dirty.Store(true)
}

// Start begins the paced publishing process. It launches a goroutine that
// ticks at the configured interval and sends a packet whenever a new snapshot
// arrived since the previous send. Safe to call multiple times; subsequent
// calls are no-ops if already started.
func (p *Publisher) Start() {
	p.mu.Lock()
	if p.ticker != nil {
		p.mu.Unlock()
		applog.Warnf("Publisher: Start called but already running.")
		return
	}

	p.ticker = time.NewTicker(p.interval)
	p.doneChan = make(chan struct{})
	p.stopOnce = sync.Once{}

	// Capture locals for the goroutine to avoid races on p.ticker/p.doneChan.
	ticker := p.ticker
	doneChan := p.doneChan

	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		applog.Infof("Publisher: Publisher goroutine started (Interval: %s)", p.interval)
		for {
			select {
			case <-ticker.C:
				if p.dirty.CompareAndSwap(true, false) {
					p.buildAndSendPacket(p.latest.Load())
				}
			case <-doneChan:
				applog.Infof("Publisher: Publisher goroutine received stop signal.")
				return
			}
		}
	}()
}

// Stop gracefully signals the publisher goroutine to terminate and waits for
// it to exit. Safe to call multiple times.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if p.ticker == nil {
		p.mu.Unlock()
		applog.Debugf("Publisher: Stop called but not running.")
		return nil
	}

	p.stopOnce.Do(func() {
		applog.Infof("Publisher: Initiating stop sequence...")
		close(p.doneChan)
		p.ticker.Stop()
		p.ticker = nil
	})

	p.mu.Unlock()

	p.wg.Wait()
	applog.Debugf("Publisher: Publisher goroutine finished.")
	return nil
}

/*
UDP Packet Structure (BigEndian)

+------------------------------------------------------------------------------+
| Field             | Data Type      | Size (Bytes) | Description              |
|-------------------|----------------|--------------|--------------------------|
| Sequence Number   | uint32         | 4            | Monotonically increasing |
| Timestamp         | int64          | 8            | Nanoseconds since epoch  |
| Output Count      | uint16         | 2            | Playback device count    |
| Input Count       | uint16         | 2            | Capture device count     |
| Default Output    | int16          | 2            | Index or -1              |
| Default Input     | int16          | 2            | Index or -1              |
| Device Records    | variable       | variable     | Outputs first, then      |
|                   |                |              | inputs, see below        |
+------------------------------------------------------------------------------+

Each device record:

+------------------------------------------------------------------------------+
| Purpose           | uint8          | 1            | 0 playback, 1 capture    |
| Raw               | uint8          | 1            | 1 for raw hw devices     |
| Rate Min          | uint32         | 4            | Hz                       |
| Rate Max          | uint32         | 4            | Hz                       |
| Rate Default      | uint32         | 4            | Hz                       |
| Channels          | uint8          | 1            | Channel layout size      |
| Name Length       | uint16         | 2            | Bytes in name            |
| Name              | []byte         | variable     | UTF-8 device name        |
+------------------------------------------------------------------------------+
*/

// buildAndSendPacket packs the snapshot into the reusable buffer and hands
// the bytes to the sender.
func (p *Publisher) buildAndSendPacket(snap *device.Snapshot) {
	if snap == nil {
		return
	}

	p.sequenceNum++
	timestamp := time.Now().UnixNano()

	p.packetBuffer.Reset()

	err := binary.Write(p.packetBuffer, binary.BigEndian, p.sequenceNum)
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, timestamp)
	}
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, uint16(len(snap.Outputs)))
	}
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, uint16(len(snap.Inputs)))
	}
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, int16(snap.DefaultOutput))
	}
	if err == nil {
		err = binary.Write(p.packetBuffer, binary.BigEndian, int16(snap.DefaultInput))
	}
	if err == nil {
		err = p.writeRecords(snap.Outputs)
	}
	if err == nil {
		err = p.writeRecords(snap.Inputs)
	}
	if err != nil {
		applog.Errorf("Publisher: Error packing snapshot into binary buffer: %v", err)
		return
	}

	packetBytes := p.packetBuffer.Bytes()
	if err := p.sender.Send(packetBytes); err == nil {
		applog.Debugf("Publisher: Sent packet %d (%d bytes)", p.sequenceNum, len(packetBytes))
	}
}

func (p *Publisher) writeRecords(devices []*device.Descriptor) error {
	for _, d := range devices {
		purpose := uint8(0)
		if d.Purpose == device.Input {
			purpose = 1
		}
		raw := uint8(0)
		if d.Raw {
			raw = 1
		}
		name := []byte(d.Name)

		err := binary.Write(p.packetBuffer, binary.BigEndian, purpose)
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, raw)
		}
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, uint32(d.SampleRateMin))
		}
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, uint32(d.SampleRateMax))
		}
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, uint32(d.SampleRateDefault))
		}
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, uint8(len(d.Layout.Channels)))
		}
		if err == nil {
			err = binary.Write(p.packetBuffer, binary.BigEndian, uint16(len(name)))
		}
		if err == nil {
			_, err = p.packetBuffer.Write(name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Close implements the io.Closer interface. It gracefully stops the publisher.
func (p *Publisher) Close() error {
	applog.Debugf("Publisher: Close called, stopping publisher...")
	return p.Stop()
}

var _ interface{ Close() error } = (*Publisher)(nil)
