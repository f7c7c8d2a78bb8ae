package network

import (
	"fmt"
	"io"
	"os"

	deep "github.com/patrikeh/go-deep"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"duel/game"
)

// weightsFile is the on-disk layout of a trained network:
//
//	hidden: relu
//	layers:
//	  - weights: [[...], ...]  # one row per output
//	    bias: [...]
type weightsFile struct {
	Hidden string        `yaml:"hidden"`
	Layers []layerWeights `yaml:"layers"`
}

type layerWeights struct {
	Weights [][]float64 `yaml:"weights"`
	Bias    []float64   `yaml:"bias"`
}

var activations = map[string]deep.ActivationType{
	"":        deep.ActivationReLU,
	"relu":    deep.ActivationReLU,
	"sigmoid": deep.ActivationSigmoid,
	"tanh":    deep.ActivationTanh,
	"linear":  deep.ActivationLinear,
}

// Load reads a YAML weights file.
func Load(r io.Reader) (*Network, error) {
	var wf weightsFile
	if err := yaml.NewDecoder(r).Decode(&wf); err != nil {
		return nil, fmt.Errorf("failed to decode network weights: %w", err)
	}
	act, ok := activations[wf.Hidden]
	if !ok {
		return nil, game.NewConfigError("network", "unknown hidden activation %q", wf.Hidden)
	}
	layers := make([]Layer, len(wf.Layers))
	for i, lw := range wf.Layers {
		if len(lw.Weights) == 0 || len(lw.Weights[0]) == 0 {
			return nil, game.NewConfigError("network", "layer %d has no weights", i)
		}
		rows, cols := len(lw.Weights), len(lw.Weights[0])
		data := make([]float64, 0, rows*cols)
		for j, row := range lw.Weights {
			if len(row) != cols {
				return nil, game.NewConfigError("network", "layer %d row %d has %d weights, want %d", i, j, len(row), cols)
			}
			data = append(data, row...)
		}
		if len(lw.Bias) != rows {
			return nil, game.NewConfigError("network", "layer %d has %d outputs but %d biases", i, rows, len(lw.Bias))
		}
		layers[i] = Layer{W: mat.NewDense(rows, cols, data), B: mat.NewVecDense(rows, lw.Bias)}
	}
	return FromLayers(layers, WithHiddenActivation(act))
}

// LoadFile reads a YAML weights file from path.
func LoadFile(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network weights: %w", err)
	}
	defer f.Close()
	return Load(f)
}
