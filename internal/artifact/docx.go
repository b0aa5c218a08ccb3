package artifact

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

var reSentenceEnd = regexp.MustCompile(`([.!?])\s+`)

// textToDocx writes a title plus body paragraphs. Blank lines separate
// paragraphs; a single long line is split into paragraphs of a few sentences.
func textToDocx(title, body, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	doc.AddParagraph("")

	for _, para := range paragraphs(body) {
		addStyledRun(doc.AddParagraph(""), para, false, fontSize)
	}

	return doc.SaveTo(outputPath)
}

func paragraphs(body string) []string {
	var out []string
	for _, block := range strings.Split(body, "\n\n") {
		block = strings.Join(strings.Fields(block), " ")
		if block == "" {
			continue
		}
		out = append(out, groupSentences(block, 4)...)
	}
	return out
}

// groupSentences splits text into chunks of at most n sentences.
func groupSentences(text string, n int) []string {
	marked := reSentenceEnd.ReplaceAllString(text, "$1\x00")
	sentences := strings.Split(marked, "\x00")

	var out []string
	for i := 0; i < len(sentences); i += n {
		end := i + n
		if end > len(sentences) {
			end = len(sentences)
		}
		out = append(out, strings.Join(sentences[i:end], " "))
	}
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
