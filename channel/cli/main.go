package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gosuri/uilive"
	"github.com/softref/ringchan/channel"
	"github.com/valyala/fastrand"
)

// Runs a producer/consumer swarm over one channel and renders its live
// statistics. Optional arguments: capacity, producer count, consumer count.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	size, producers, consumers := 128, 4, 2
	args := os.Args[1:]

	for i, dst := range []*int{&size, &producers, &consumers} {
		if i >= len(args) {
			break
		}

		v, err := strconv.Atoi(args[i])

		if err != nil {
			log.Println("arguments must be integers: capacity [producers [consumers]]")
			return
		}

		*dst = v
	}

	ch, err := channel.New[uint64](size)

	if err != nil {
		log.Println(err)
		return
	}

	defer ch.Close()

	for i := 0; i < producers; i++ {
		go runProducer(ch.Clone())
	}

	for i := 0; i < consumers; i++ {
		go runConsumer(ch.Clone())
	}

	ticker := time.NewTicker(time.Second)
	writer := uilive.New()

	capacity := writer.Newline()
	length := writer.Newline()
	peek := writer.Newline()
	written := writer.Newline()
	read := writer.Newline()

	writer.Start()
	defer writer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprintf(capacity, "Capacity: %d\n", ch.Cap())
			fmt.Fprintf(length, "Length: %d\n", ch.Len())
			fmt.Fprintf(peek, "Peek estimate: %d\n", ch.Peek())
			fmt.Fprintf(written, "Items written: %d\n", ch.ItemsWritten())
			fmt.Fprintf(read, "Items read: %d\n", ch.ItemsRead())
		}
	}
}

func runProducer(ch *channel.Chan[uint64]) {
	defer ch.Close()

	for {
		ch.Send(uint64(fastrand.Uint32()))
		time.Sleep(time.Duration(fastrand.Uint32n(50)) * time.Millisecond)
	}
}

func runConsumer(ch *channel.Chan[uint64]) {
	defer ch.Close()

	for {
		_ = ch.Recv()
		time.Sleep(time.Duration(fastrand.Uint32n(100)) * time.Millisecond)
	}
}
