// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/datacat/cmd/datacat/cmd"
)

func main() {
	cmd.Execute()
}
