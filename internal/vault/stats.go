package vault

import (
	"os"
	"strings"

	"github.com/Paintersrp/knot/internal/constants"
)

// ComputeStats counts whitespace-separated words in the file at path and
// estimates reading minutes, rounding up. Unreadable files yield zero stats.
func (s *State) ComputeStats(path string) Stats {
	content, err := os.ReadFile(path)
	if err != nil {
		return Stats{}
	}
	return CountStats(string(content), s.readingSpeed)
}

// SelectedStats is ComputeStats for the file under the cursor.
func (s *State) SelectedStats() Stats {
	f, ok := s.SelectedFile()
	if !ok {
		return Stats{}
	}
	return s.ComputeStats(f.Path)
}

// ReadingMinutes estimates the reading time of words at the configured speed.
func (s *State) ReadingMinutes(words int) int {
	return readingMinutes(words, s.readingSpeed)
}

func CountStats(content string, wordsPerMinute int) Stats {
	words := len(strings.Fields(content))
	return Stats{
		Words:   words,
		Minutes: readingMinutes(words, wordsPerMinute),
	}
}

func readingMinutes(words, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = constants.WordsPerMinute
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}
