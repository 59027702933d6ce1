package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/conorfennell/kotoba/internal/domain"
)

const (
	themePrefix         = "T:"
	nativePrefix        = "Q:"
	targetPrefix        = "A:"
	transcriptionPrefix = "P:"
	audioPrefix         = "S:"
	idPrefix            = "ID:"
)

type state int

const (
	seeking state = iota
	readingNative
	readingTarget
	readingTranscription
)

// ParseFile reads a file from the given path and extracts all cards.
func ParseFile(path string) ([]domain.Card, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads markdown card text from an io.Reader and extracts all cards.
//
//	T: food | 食べ物
//	Q: りんごが好きです。
//	A: I like apples.
//	P: /aɪ laɪk ˈæpəlz/
//	S: audio/food-001.mp3
//	---
//
// A "T:" line sets the theme for every card after it. "ID:" and "S:" lines
// belong to the card being read. A card ends at "---", at the next "Q:" or
// "T:", or at the end of the input.
func Parse(r io.Reader) ([]domain.Card, error) {
	scanner := bufio.NewScanner(r)
	var cards []domain.Card
	var themeKey, themeName string
	var currentCard domain.Card
	var currentBlock []string
	currentState := seeking

	flushBlock := func() {
		if len(currentBlock) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(currentBlock, "\n"))
		switch currentState {
		case readingNative:
			currentCard.Native = content
		case readingTarget:
			currentCard.Target = content
		case readingTranscription:
			currentCard.Transcription = content
		}
		currentBlock = nil
	}

	finishCard := func() {
		flushBlock()
		if currentCard.Native != "" {
			currentCard.ThemeKey = themeKey
			currentCard.ThemeName = themeName
			cards = append(cards, currentCard)
		}
		currentCard = domain.Card{}
		currentState = seeking
	}

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "---":
			finishCard()

		case strings.HasPrefix(line, themePrefix):
			finishCard()
			themeKey, themeName = parseTheme(fieldValue(line, themePrefix))

		case strings.HasPrefix(line, idPrefix):
			currentCard.ID = strings.TrimSpace(fieldValue(line, idPrefix))

		case strings.HasPrefix(line, audioPrefix):
			currentCard.AudioURL = strings.TrimSpace(fieldValue(line, audioPrefix))

		case strings.HasPrefix(line, nativePrefix):
			if currentState != seeking { // A new prompt always starts a new card
				finishCard()
			}
			currentState = readingNative
			currentBlock = append(currentBlock, fieldValue(line, nativePrefix))

		case strings.HasPrefix(line, targetPrefix):
			flushBlock()
			currentState = readingTarget
			currentBlock = append(currentBlock, fieldValue(line, targetPrefix))

		case strings.HasPrefix(line, transcriptionPrefix):
			flushBlock()
			currentState = readingTranscription
			currentBlock = append(currentBlock, fieldValue(line, transcriptionPrefix))

		case currentState != seeking:
			currentBlock = append(currentBlock, line)
		}
	}

	finishCard() // Finish the very last card in the file

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

func fieldValue(line, prefix string) string {
	v := line[len(prefix):]
	if strings.HasPrefix(v, " ") {
		v = v[1:]
	}
	return v
}

// parseTheme splits "key | Display Name". Without a name the key is used.
func parseTheme(v string) (key, name string) {
	key, name, found := strings.Cut(v, "|")
	key = strings.TrimSpace(key)
	name = strings.TrimSpace(name)
	if !found || name == "" {
		name = key
	}
	return key, name
}
