package playlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/pk-services/pks/filesystem"
)

const (
	m3uHeader = "#EXTM3U"
	m3uInfo   = "#EXTINF:"
)

var (
	errMalformedM3U  = errors.New("malformed M3U: missing #EXTM3U header")
	errMissingExtinf = errors.New("malformed M3U: entry without preceding #EXTINF")
)

// Track is one entry of an extended M3U playlist.
type Track struct {
	// Duration in seconds, -1 when unknown.
	Duration int
	Title    string
	URL      string
}

// WriteM3U writes the header then an #EXTINF line and the location of each track.
func WriteM3U(w io.Writer, tracks []Track) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, m3uHeader)
	for _, t := range tracks {
		fmt.Fprintf(bw, "%s%d,%s\n", m3uInfo, t.Duration, strings.ReplaceAll(t.Title, "\n", " "))
		fmt.Fprintln(bw, t.URL)
	}
	return bw.Flush()
}

// DecodeM3U reads an extended M3U playlist.
func DecodeM3U(r io.Reader) ([]Track, error) {
	var (
		tracks  []Track
		current *Track
		lineNum int
		scanner = bufio.NewScanner(r)
	)

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if lineNum == 1 {
			if !strings.HasPrefix(line, m3uHeader) {
				return nil, errMalformedM3U
			}
			continue
		}

		switch {
		case line == "":
		case strings.HasPrefix(line, m3uInfo):
			duration, title, err := decodeInfoLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			current = &Track{Duration: duration, Title: title}
		case strings.HasPrefix(line, "#"):
		default:
			if current == nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, errMissingExtinf)
			}
			current.URL = line
			tracks = append(tracks, *current)
			current = nil
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

var infoLine = regexp.MustCompile(`^#EXTINF:\s*(-?\d+)(?:\.\d+)?[^,]*,(.*)$`)

func decodeInfoLine(line string) (duration int, title string, err error) {
	m := infoLine.FindStringSubmatch(line)
	if m == nil {
		return 0, "", fmt.Errorf("invalid info line %q", line)
	}

	duration, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("duration parsing error: %w", err)
	}
	return duration, strings.TrimSpace(m[2]), nil
}

// ReadM3U reads the playlist file at path.
func ReadM3U(path string) ([]Track, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeM3U(bytes.NewReader(data))
}
