package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/softref/ringchan/channel"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	ch, err := channel.New[[16]byte](10)

	if err != nil {
		log.Println(err)
		return
	}

	defer ch.Close()

	go runConsumer(ch.Clone())
	go runProducer(ch.Clone())

	<-ctx.Done()
}

func runConsumer(ch *channel.Chan[[16]byte]) {
	defer ch.Close()

	log.Println("consumer: started")

	for {
		log.Println("consumer: awaiting message...")
		msg := ch.Recv()
		log.Printf("consumer: received %q (%d buffered)", trim(msg), ch.Peek())
	}
}

func runProducer(ch *channel.Chan[[16]byte]) {
	defer ch.Close()

	log.Println("producer: started")

	var msg [16]byte
	copy(msg[:], "Hello World!")

	for {
		ch.Send(msg)
		log.Printf("producer: sent %q (%d buffered)", trim(msg), ch.Peek())
		time.Sleep(2 * time.Second)
	}
}

func trim(msg [16]byte) string {
	for i, b := range msg {
		if b == 0 {
			return string(msg[:i])
		}
	}

	return string(msg[:])
}
