package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pronsSec/subnet-siphon/pkg/subnet"
)

// Stdout is the path which makes the file writers print to standard output.
const Stdout = "-"

const csvHeader = "subnet"

// WriteCSV writes a "subnet" header followed by one subnet per row, in the given order.
func WriteCSV(w io.Writer, subnets []subnet.Subnet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{csvHeader}); err != nil {
		return err
	}
	for _, s := range subnets {
		if err := cw.Write([]string{s.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes one subnet per line without a header.
func WriteText(w io.Writer, subnets []subnet.Subnet) error {
	bw := bufio.NewWriter(w)
	for _, s := range subnets {
		if _, err := fmt.Fprintln(bw, s.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCSVFile writes the CSV output to path. An empty path writes nothing.
func WriteCSVFile(path string, subnets []subnet.Subnet) error {
	return writeFile(path, subnets, WriteCSV)
}

// WriteTextFile writes the text output to path. An empty path writes nothing.
func WriteTextFile(path string, subnets []subnet.Subnet) error {
	return writeFile(path, subnets, WriteText)
}

func writeFile(path string, subnets []subnet.Subnet, write func(io.Writer, []subnet.Subnet) error) error {
	switch path {
	case "":
		return nil
	case Stdout:
		return write(os.Stdout, subnets)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f, subnets); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return f.Close()
}
