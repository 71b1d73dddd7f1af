package main

import (
	"log"

	"github.com/db47h/sigwire"
	"github.com/db47h/sigwire/siglib"
)

func main() {
	stream := siglib.Stream(sigwire.U(8))

	// a producer drives the stream, a consumer sees it flipped.
	producer := stream.Create()
	consumer := stream.Flip().Create()

	var plan sigwire.Plan
	err := sigwire.Connect(&plan,
		sigwire.Named("producer", producer),
		sigwire.Named("consumer", consumer),
	)
	if err != nil {
		log.Fatal(err)
	}
	for _, a := range plan.Assigns() {
		log.Printf("%s <= %s", a.Dst.Name(), a.Src)
	}
}
