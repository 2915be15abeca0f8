// +build ignore

package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/oneconcern/datacat/pkg/fingerprint"
)

func main() {
	start := time.Now()
	defer func() {
		log.Printf("took: %s", time.Now().Sub(start))
	}()

	target := "/tmp/scratchdata/quakes.csv"
	//target := "/tmp/scratchdata/patches.tar"
	if len(os.Args) > 1 {
		target = os.Args[1]
	}
	log.Println("hashing", target)

	shaStart := time.Now()
	sum, err := fingerprint.SHA256File(target)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("sha256 took", time.Now().Sub(shaStart).String())

	m := fingerprint.New(
		fingerprint.LeafSize(2 * 1024 * 1024),
		//fingerprint.NumberOfWorkers(1),
	)
	treeStart := time.Now()
	digest, err := m.Process(target)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("blake2b tree took", time.Now().Sub(treeStart).String())

	fmt.Println("sha256:", sum)
	fmt.Printf("  tree: %x\n", digest)
}
