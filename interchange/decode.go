package interchange

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Decode reads a device from its YAML (or JSON) text form. Gzip-compressed
// input is detected and decompressed transparently.
func Decode(r io.Reader) (*Device, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to read device")
	}

	var src io.Reader = br
	if bytes.Equal(magic, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open gzip stream")
		}
		defer gz.Close()
		src = gz
	}

	data, err := ioutil.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read device")
	}

	var dev Device
	if err := yaml.Unmarshal(data, &dev); err != nil {
		return nil, errors.Wrap(err, "failed to decode device")
	}
	return &dev, nil
}

// Load decodes the device stored in the file at path.
func Load(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dev, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return dev, nil
}

// Encode writes the device in its YAML text form.
func Encode(w io.Writer, dev *Device) error {
	data, err := yaml.Marshal(dev)
	if err != nil {
		return errors.Wrap(err, "failed to encode device")
	}
	_, err = w.Write(data)
	return err
}
