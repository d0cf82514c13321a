package maxsat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Clause is a disjunction of non-zero DIMACS literals (negative means
// 'not') with the weight it contributes when falsified.
type Clause struct {
	Literals []int
	Weight   float64
}

// WCNF holds a weighted partial MAX-SAT problem parsed from the
// DIMACS wcnf format: hard clauses must hold, soft clauses carry the
// weight paid for falsifying them.
// see: https://maxsat-evaluations.github.io/2021/format.html
type WCNF struct {
	numVariables int
	hard         [][]int
	soft         []Clause
}

func (w *WCNF) NumVariables() int { return w.numVariables }
func (w *WCNF) Hard() [][]int     { return w.hard }
func (w *WCNF) Soft() []Clause    { return w.soft }

// NewWCNF parses a wcnf formatted stream.
func NewWCNF(wcnfReader io.Reader) (*WCNF, error) {
	reader := bufio.NewScanner(wcnfReader)

	commentLine := regexp.MustCompile(`^c\s*.*`)
	headerLine := regexp.MustCompile(`^p wcnf\s+\d+\s+\d+\s+\d+\s*$`)
	cleanInput := regexp.MustCompile(`\s\s+`)

	numVariables := 0
	numClauses := 0
	top := 0.0
	out := &WCNF{}
	seenHeader := false

	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "" || commentLine.MatchString(line) {
			continue
		}
		line = cleanInput.ReplaceAllString(line, " ")

		if headerLine.MatchString(line) {
			if seenHeader {
				return nil, fmt.Errorf("invalid format: duplicate header (%s)", line)
			}
			seenHeader = true
			fields := strings.Split(line, " ")
			var err error
			if numVariables, err = strconv.Atoi(fields[2]); err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", fields[2], line)
			}
			if numClauses, err = strconv.Atoi(fields[3]); err != nil {
				return nil, fmt.Errorf("invalid number (%s) in statement (%s)", fields[3], line)
			}
			if top, err = strconv.ParseFloat(fields[4], 64); err != nil || top <= 0 {
				return nil, fmt.Errorf("invalid top weight (%s) in statement (%s)", fields[4], line)
			}
			out.numVariables = numVariables
			continue
		}

		if !seenHeader {
			return nil, fmt.Errorf("invalid wcnf format: missing header 'p wcnf <variables> <clauses> <top>'")
		}

		weight, literals, err := parseClause(line, numVariables)
		if err != nil {
			return nil, err
		}
		if weight >= top {
			out.hard = append(out.hard, literals)
		} else {
			out.soft = append(out.soft, Clause{Literals: literals, Weight: weight})
		}
	}
	if err := reader.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error reading wcnf data: %w", err)
	}

	if numVariables == 0 || numClauses == 0 {
		return nil, fmt.Errorf("invalid format: no variables or clauses found")
	}
	if got := len(out.hard) + len(out.soft); got != numClauses {
		return nil, fmt.Errorf("invalid format: header declares %d clauses, found %d", numClauses, got)
	}
	return out, nil
}

func parseClause(line string, numVariables int) (float64, []int, error) {
	fields := strings.Split(line, " ")
	if len(fields) < 3 || fields[len(fields)-1] != "0" {
		return 0, nil, fmt.Errorf("invalid clause (%s): want '<weight> <literals...> 0'", line)
	}
	weight, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || weight <= 0 {
		return 0, nil, fmt.Errorf("invalid clause (%s): bad weight %s", line, fields[0])
	}
	literals := make([]int, 0, len(fields)-2)
	for _, field := range fields[1 : len(fields)-1] {
		lit, err := strconv.Atoi(field)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid clause (%s): %s is not a number", line, field)
		}
		if lit == 0 || lit > numVariables || lit < -numVariables {
			return 0, nil, fmt.Errorf("invalid clause (%s): %d is not a valid literal", line, lit)
		}
		literals = append(literals, lit)
	}
	return weight, literals, nil
}
