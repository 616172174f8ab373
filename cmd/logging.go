package cmd

import "github.com/df07/go-bidirectional-renderer/pkg/log"

var logger = log.New("bdpt")
