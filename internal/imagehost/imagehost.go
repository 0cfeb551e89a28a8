// Package imagehost is the contract with the external image-hosting
// collaborator. The core stores and passes through reference strings; it
// never interprets their internal structure.
package imagehost

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Releaser asks the host to delete a set of previously issued references.
// Called when a product is deleted.
type Releaser interface {
	Release(refs []string) error
}

// Noop is used when no hosting credentials are configured (local dev, tests).
type Noop struct{}

func (Noop) Release(refs []string) error {
	log.Printf("imagehost: no host configured, skipping release of %d refs", len(refs))
	return nil
}

// Cloudinary releases references through the Cloudinary admin API using
// basic auth with the API key pair.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	client    *http.Client
}

func NewCloudinary(cloudName, apiKey, apiSecret string) *Cloudinary {
	return &Cloudinary{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FromEnv builds a Releaser from CLOUDINARY_* variables, falling back to
// Noop when they are absent.
func FromEnv() Releaser {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return Noop{}
	}
	return NewCloudinary(cloudName, apiKey, apiSecret)
}

func (c *Cloudinary) Release(refs []string) error {
	if len(refs) == 0 {
		return nil
	}

	params := url.Values{}
	for _, ref := range refs {
		params.Add("public_ids[]", ref)
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/resources/image/upload?%s",
		c.CloudName, params.Encode())
	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.APIKey, c.APISecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("imagehost: release failed with status %d for refs %s",
			resp.StatusCode, strings.Join(refs, ", "))
	}
	return nil
}
