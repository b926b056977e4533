package serialport

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/allape/gogger"
	"github.com/allape/openspin/spin/dial"
	"go.bug.st/serial"
)

var l = gogger.New("spin.dial.serialport")

// Dial reads newline separated "dx,dy" pixel deltas from a serial port.
// A line with a single number is a horizontal delta.
type Dial struct {
	dial.Driver

	openLocker sync.Locker
	deltas     chan dial.Delta
	used       bool

	Port serial.Port

	Name string
	Baud int
}

func (d *Dial) Open() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.Port != nil {
		return errors.New("port already open")
	}
	// the delta channel is closed when the port goes away
	if d.used {
		return errors.New("dial can not be reopened")
	}

	mode := &serial.Mode{
		BaudRate: d.Baud,
	}
	port, err := serial.Open(d.Name, mode)
	if err != nil {
		return err
	}
	d.Port = port
	d.used = true

	go d.read(port)

	return nil
}

func (d *Dial) read(port serial.Port) {
	defer close(d.deltas)

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		delta, err := ParseDelta(line)
		if err != nil {
			l.Warn().Println("skip line:", err)
			continue
		}
		l.Verbose().Println(">", line)
		d.deltas <- delta
	}

	if err := scanner.Err(); err != nil {
		l.Error().Println("read error:", err)
	} else {
		l.Warn().Println("EOF")
	}
}

func (d *Dial) Deltas() <-chan dial.Delta {
	return d.deltas
}

func (d *Dial) Close() error {
	d.openLocker.Lock()
	defer d.openLocker.Unlock()

	if d.Port == nil {
		return nil
	}

	err := d.Port.Close()
	d.Port = nil
	return err
}

var ErrNonFinite = errors.New("non-finite value")

func parseValue(name, text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", name, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, text, ErrNonFinite)
	}
	return value, nil
}

func ParseDelta(line string) (dial.Delta, error) {
	parts := strings.Split(line, ",")
	if len(parts) > 2 {
		return dial.Delta{}, fmt.Errorf("expected 1 or 2 values, got %d: %q", len(parts), line)
	}

	x, err := parseValue("dx", parts[0])
	if err != nil {
		return dial.Delta{}, err
	}

	delta := dial.Delta{X: x}

	if len(parts) == 2 {
		delta.Y, err = parseValue("dy", parts[1])
		if err != nil {
			return dial.Delta{}, err
		}
	}

	return delta, nil
}

func New(name string, baud int) *Dial {
	return &Dial{
		openLocker: &sync.Mutex{},
		deltas:     make(chan dial.Delta, 64),
		Name:       name,
		Baud:       baud,
	}
}
