// Command sembet-enroll registers a face with the verification backend
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/DeboraAmaral/sprint04-iot/internal/adapters/faceapi"
	"github.com/DeboraAmaral/sprint04-iot/internal/core/frame"
	"github.com/DeboraAmaral/sprint04-iot/internal/services/enroll/service"
)

func main() {
	var (
		user    = flag.String("user", "", "identity to enroll (required)")
		image   = flag.String("image", "", "path to a jpeg still (required)")
		baseURL = flag.String("url", "http://localhost:8000", "verification backend base url")
		timeout = flag.Duration("timeout", 30*time.Second, "request timeout")
	)
	flag.Parse()

	if *user == "" || *image == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*user, *image, *baseURL, *timeout); err != nil {
		fmt.Fprintln(os.Stderr, "enroll failed:", err)
		os.Exit(1)
	}
}

func run(user, imagePath, baseURL string, timeout time.Duration) error {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", imagePath, err)
	}

	dataURL, err := frame.FromJPEGBytes(raw)
	if err != nil {
		return fmt.Errorf("encode %s: %w", imagePath, err)
	}

	client := faceapi.NewClient(faceapi.Options{
		BaseURL: baseURL,
		Timeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	receipt, err := service.New(client).Register(ctx, user, dataURL)
	if err != nil {
		return err
	}

	fmt.Printf("enrolled %s: %s\n", receipt.UserID, receipt.Message)
	return nil
}
