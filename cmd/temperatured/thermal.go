package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const thermalRoot = "/sys/class/thermal"

var errNoZones = errors.New("no thermal zones")

// cpuTemperature returns the average of thermal_zone*/temp under root, in
// degrees celsius. The files hold millidegrees.
func cpuTemperature(root string) (float64, error) {
	var sum float64
	var n int
	for i := 0; ; i++ {
		f, err := os.Open(filepath.Join(root, fmt.Sprintf("thermal_zone%d", i), "temp"))
		if err != nil {
			break
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			v, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
			if err != nil {
				continue
			}
			sum += v / 1000
			n++
		}
		f.Close()
	}
	if n == 0 {
		return 0, errNoZones
	}
	return sum / float64(n), nil
}

func classify(celsius float64) string {
	switch {
	case celsius < 10:
		return "Unknown"
	case celsius <= 40:
		return "Cool"
	case celsius <= 65:
		return "Normal"
	case celsius <= 70:
		return "Average"
	case celsius <= 80:
		return "High"
	case celsius <= 100:
		return "Cooking"
	}
	return "Unknown"
}
