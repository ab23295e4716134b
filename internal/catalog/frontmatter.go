package catalog

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is a markdown file split into YAML frontmatter and body.
type document struct {
	frontmatter []byte
	body        string
}

// parseFile reads a markdown file and extracts the YAML frontmatter block.
// Frontmatter sits at the top of the file between two lines containing only "---".
func parseFile(path string) (document, error) {
	f, err := os.Open(path)
	if err != nil {
		return document{}, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	peek, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return document{}, err
	}
	hasFM := string(peek) == "---"

	var fmBuf strings.Builder
	var bodyBuf strings.Builder

	if hasFM {
		// Consume the opening '---' line
		if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return document{}, err
		}
		for {
			l, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return document{}, err
			}
			if strings.TrimSpace(l) == "---" {
				break
			}
			fmBuf.WriteString(l)
			if errors.Is(err, io.EOF) {
				break
			}
		}
	}
	for {
		l, err := br.ReadString('\n')
		bodyBuf.WriteString(l)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return document{}, err
		}
	}

	return document{
		frontmatter: []byte(fmBuf.String()),
		body:        bodyBuf.String(),
	}, nil
}

// decodeFrontmatter unmarshals a frontmatter block into dest.
func decodeFrontmatter(fm []byte, dest interface{}) error {
	if len(fm) == 0 {
		return nil
	}
	return yaml.Unmarshal(fm, dest)
}
