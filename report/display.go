package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoColorFG    = successColorFG
	infoStyleBG    = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	errorStyleBG.Print("Internal Compiler Error ")
	errorColorFG.Println(message)
	fmt.Print("This error was not supposed to happen: please open an issue on GitHub\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	errorStyleBG.Print("Fatal Error ")
	errorColorFG.Println(message)
}

// displayInfo displays a tagged informational message.
func displayInfo(tag, msg string) {
	infoStyleBG.Print(tag)
	infoColorFG.Println(" " + msg)
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	errorStyleBG.Print("Error ")
	errorColorFG.Printf("%s: %s\n\n", reprPath, err)
}

// displayCompileMessage displays a compile error with its banner and, when a
// span is available, the erroneous source text.
func displayCompileMessage(label, absPath, reprPath string, span *TextSpan, message string) {
	if span == nil {
		errorStyleBG.Print(label)
		fmt.Printf(" %s: %s\n\n", reprPath, message)
		return
	}

	errorStyleBG.Print(label)
	fmt.Printf(" %s:%d:%d: %s\n\n", reprPath, span.StartLine+1, span.StartCol+1, message)
	displaySourceText(absPath, span)
}

// displayWarning displays a compile warning.
func displayWarning(absPath, reprPath string, span *TextSpan, message string) {
	warnStyleBG.Print("Warning")
	if span == nil {
		fmt.Printf(" %s: %s\n\n", reprPath, message)
		return
	}

	fmt.Printf(" %s:%d:%d: %s\n\n", reprPath, span.StartLine+1, span.StartCol+1, message)
	displaySourceText(absPath, span)
}

// displaySourceText displays a segment of source text defined by a text span
// with the erroneous range underlined by carets.
func displaySourceText(absPath string, span *TextSpan) {
	// Open the file so we can read the desired source text.
	file, err := os.Open(absPath)
	if err != nil {
		// The file may be gone by the time the error prints; the message on
		// its own is still useful.
		return
	}
	defer file.Close()

	// Collect all the source lines contained in the given span.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt32
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Generate the format string used to left-pad line numbers.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		// Print the line number, separator bar, and the source text with the
		// leading indent trimmed off.
		infoColorFG.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// The underlining continues from the previous line for every line but
		// the first, and runs to the end of the line for every line but the
		// last.
		caretPrefixCount := 0
		if i == 0 {
			caretPrefixCount = span.StartCol - minIndent
		}

		caretSuffixCount := 0
		if i == len(lines)-1 {
			caretSuffixCount = len(line) - span.EndCol
		}

		fmt.Print(strings.Repeat(" ", caretPrefixCount))
		errorColorFG.Println(strings.Repeat("^", len(line)-caretSuffixCount-caretPrefixCount-minIndent))
	}

	fmt.Println()
}
