package device

import (
	"sync"
	"testing"
	"time"
)

func TestExchangeClaimAtMostOncePerPublish(t *testing.T) {
	x := NewExchange()
	x.Publish(NewSnapshot())

	const claimers = 8
	var wg sync.WaitGroup
	results := make(chan *Snapshot, claimers)
	for range claimers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- x.TryClaim()
		}()
	}
	wg.Wait()
	close(results)

	claimed := 0
	for s := range results {
		if s != nil {
			claimed++
		}
	}
	if claimed != 1 {
		t.Errorf("%d claimers got the snapshot, want exactly 1", claimed)
	}
}

func TestExchangeTryClaimEmpty(t *testing.T) {
	x := NewExchange()
	if s := x.TryClaim(); s != nil {
		t.Errorf("TryClaim on empty exchange = %v, want nil", s)
	}
}

func TestExchangePublishReplacesUnclaimed(t *testing.T) {
	x := NewExchange()
	first := NewSnapshot()
	second := NewSnapshot()
	second.append(&Descriptor{Name: "hw:0,0", Purpose: Output}, false)

	x.Publish(first)
	x.Publish(second)

	if s := x.TryClaim(); s != second {
		t.Error("claim did not return the newest snapshot")
	}
	if s := x.TryClaim(); s != nil {
		t.Error("second claim returned a snapshot after slot was emptied")
	}
}

func TestExchangeBlockUntilPublished(t *testing.T) {
	t.Run("publish first", func(t *testing.T) {
		x := NewExchange()
		x.Publish(NewSnapshot())

		done := make(chan struct{})
		go func() {
			x.BlockUntilPublished()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("BlockUntilPublished did not return after a publish")
		}
	})

	t.Run("wait first", func(t *testing.T) {
		x := NewExchange()
		done := make(chan struct{})
		go func() {
			x.BlockUntilPublished()
			close(done)
		}()

		select {
		case <-done:
			t.Fatal("BlockUntilPublished returned before any publish")
		case <-time.After(20 * time.Millisecond):
		}

		x.Publish(NewSnapshot())
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("BlockUntilPublished did not observe the publish")
		}
	})
}

func TestExchangeBroadcastWakesWaiter(t *testing.T) {
	x := NewExchange()
	done := make(chan struct{})
	go func() {
		x.WaitSignal()
		close(done)
	}()

	// Broadcast repeatedly: the waiter may not have reached cond.Wait yet.
	for {
		x.Broadcast()
		select {
		case <-done:
			return
		case <-time.After(time.Millisecond):
		}
	}
}
