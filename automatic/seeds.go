package automatic

import (
	"bufio"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"lukechampine.com/frand"
)

const seedLen = 32

var ErrBadSeed = errors.New("bad seed")

// GenerateSeeds creates n random seeds, one per game.
func GenerateSeeds(n int) [][seedLen]byte {
	seeds := make([][seedLen]byte, n)
	for i := range seeds {
		frand.Read(seeds[i][:])
	}
	return seeds
}

// SeedsFromString derives n seeds from a single string so that a whole
// autoplay run can be repeated.
func SeedsFromString(s string, n int) [][seedLen]byte {
	return lo.Times(n, func(i int) [seedLen]byte {
		return sha256.Sum256([]byte(fmt.Sprintf("%s:%d", s, i)))
	})
}

// WriteSeeds writes one URL-safe base64 seed per line.
func WriteSeeds(w io.Writer, seeds [][seedLen]byte) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d autoplay seeds\n", len(seeds))
	for _, seed := range seeds {
		bw.WriteString(base64.RawURLEncoding.EncodeToString(seed[:]))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadSeeds parses what WriteSeeds writes. Blank lines and lines starting
// with # are skipped.
func ReadSeeds(r io.Reader) ([][seedLen]byte, error) {
	var seeds [][seedLen]byte
	scanner := bufio.NewScanner(r)
	for ln := 1; scanner.Scan(); ln++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", ln, ErrBadSeed, err)
		}
		if len(raw) != seedLen {
			return nil, fmt.Errorf("line %d: %w: %d bytes", ln, ErrBadSeed, len(raw))
		}
		seeds = append(seeds, [seedLen]byte(raw))
	}
	return seeds, scanner.Err()
}

func SaveSeeds(seeds [][seedLen]byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSeeds(f, seeds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadSeeds(path string) ([][seedLen]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeeds(f)
}
