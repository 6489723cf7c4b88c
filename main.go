package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"punctuator/prosetag"
)

func main() {
	if err := newRootCmd(prosetag.ProseTagger{}).ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Error("punctuator failed")
		os.Exit(1)
	}
}
