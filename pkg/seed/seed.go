// Package seed loads an initial set of subscribers from a YAML file.
package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/nsyszr/decoderfleet/pkg/decoder"
	"github.com/nsyszr/decoderfleet/pkg/model"
	"github.com/nsyszr/decoderfleet/pkg/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// File is the layout of a seed file:
//
//	subscribers:
//	  - id: "1"
//	    name: Jane Doe
//	    decoders:
//	      - address: 127.0.10.1
//	        channels: [TVA, RDI]
type File struct {
	Subscribers []Subscriber `yaml:"subscribers"`
}

type Subscriber struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Email    string    `yaml:"email"`
	Phone    string    `yaml:"phone"`
	Decoders []Decoder `yaml:"decoders"`
}

type Decoder struct {
	Address  string   `yaml:"address"`
	Channels []string `yaml:"channels"`
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to decode seed file")
	}

	seen := make(map[string]bool, len(f.Subscribers))
	for i, s := range f.Subscribers {
		if s.ID == "" {
			return nil, fmt.Errorf("subscriber #%d: id is required", i+1)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("subscriber %s: duplicate id", s.ID)
		}
		seen[s.ID] = true
		for j, d := range s.Decoders {
			if d.Address == "" {
				return nil, fmt.Errorf("subscriber %s: decoder #%d: address is required", s.ID, j+1)
			}
		}
	}

	return f, nil
}

// Models converts the file into models. Repeated addresses and channels
// collapse the same way the API would treat them.
func (f *File) Models() []model.Subscriber {
	out := make([]model.Subscriber, 0, len(f.Subscribers))
	for _, s := range f.Subscribers {
		m := model.Subscriber{
			ID:    s.ID,
			Name:  s.Name,
			Email: s.Email,
			Phone: s.Phone,
		}
		for _, d := range s.Decoders {
			address := decoder.NormalizeAddress(d.Address)
			m.AssignDecoder(address)
			dm := m.FindDecoder(address)
			for _, ch := range d.Channels {
				if ch != "" {
					dm.AddChannel(ch)
				}
			}
		}
		out = append(out, m)
	}
	return out
}

// LoadFile reads the seed file at path and creates its subscribers in store.
// It returns the number of subscribers created.
func LoadFile(path string, store storage.SubscriberStore) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read seed file %s", path)
	}

	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return 0, errors.Wrap(err, path)
	}

	return Apply(f, store)
}

// Apply creates the subscribers of f in store.
func Apply(f *File, store storage.SubscriberStore) (int, error) {
	n := 0
	for _, m := range f.Models() {
		m := m
		if err := store.Create(&m); err != nil {
			return n, errors.Wrapf(err, "failed to create subscriber %s", m.ID)
		}
		log.WithFields(log.Fields{
			"subscriber": m.ID,
			"decoders":   len(m.Decoders),
		}).Debug("seed: subscriber created")
		n++
	}
	return n, nil
}
