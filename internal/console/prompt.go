package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Prompter reads answers line by line from the user.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Printf writes to the console.
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Line shows prompt and returns the trimmed answer. It returns io.EOF once
// the input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) Int(prompt string) (int, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

func (p *Prompter) Uint(prompt string) (uint64, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(line, 10, 64)
	if err != nil {
		return 0, errInvalidNumber
	}
	return n, nil
}

func (p *Prompter) Amount(prompt string) (decimal.Decimal, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(line)
	if err != nil {
		return decimal.Zero, errInvalidNumber
	}
	return amount, nil
}
