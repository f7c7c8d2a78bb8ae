package network

import (
	"fmt"

	deep "github.com/patrikeh/go-deep"
	"gonum.org/v1/gonum/mat"

	"duel/game"
)

// Layer is an affine transform W*x + B with W shaped outputs x inputs.
type Layer struct {
	W *mat.Dense
	B *mat.VecDense
}

func (l Layer) Inputs() int {
	_, c := l.W.Dims()
	return c
}

func (l Layer) Outputs() int {
	r, _ := l.W.Dims()
	return r
}

// Network is an immutable feed-forward network. Hidden layers apply the
// hidden activation after their affine transform, the output layer applies
// none. Forward only reads the weights, so one Network can serve concurrent
// searches.
type Network struct {
	layers []Layer
	hidden deep.Differentiable
}

type Option func(*options)

type options struct {
	weight deep.WeightInitializer
	hidden deep.ActivationType
}

// WithWeights sets the initializer used by New for weights and biases.
func WithWeights(init deep.WeightInitializer) Option {
	return func(o *options) {
		if init != nil {
			o.weight = init
		}
	}
}

// WithHiddenActivation replaces the rectified-linear hidden activation.
func WithHiddenActivation(act deep.ActivationType) Option {
	return func(o *options) {
		if act != deep.ActivationNone {
			o.hidden = act
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		weight: deep.NewNormal(0.1, 0),
		hidden: deep.ActivationReLU,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds a randomly initialized network with layer widths [w0 ... wn].
func New(widths []int, opts ...Option) (*Network, error) {
	if len(widths) < 2 {
		return nil, game.NewConfigError("network", "need at least two layer widths, got %v", widths)
	}
	for i, w := range widths {
		if w < 1 {
			return nil, game.NewConfigError("network", "layer %d has width %d", i, w)
		}
	}
	o := newOptions(opts)
	layers := make([]Layer, len(widths)-1)
	for i := range layers {
		in, out := widths[i], widths[i+1]
		w := make([]float64, out*in)
		for j := range w {
			w[j] = o.weight()
		}
		b := make([]float64, out)
		for j := range b {
			b[j] = o.weight()
		}
		layers[i] = Layer{W: mat.NewDense(out, in, w), B: mat.NewVecDense(out, b)}
	}
	return &Network{layers: layers, hidden: deep.GetActivation(o.hidden)}, nil
}

// FromLayers wraps explicit layers, checking that adjacent shapes line up.
func FromLayers(layers []Layer, opts ...Option) (*Network, error) {
	if len(layers) == 0 {
		return nil, game.NewConfigError("network", "no layers")
	}
	for i, l := range layers {
		if l.W == nil || l.B == nil {
			return nil, game.NewConfigError("network", "layer %d is missing weights or bias", i)
		}
		if l.B.Len() != l.Outputs() {
			return nil, game.NewConfigError("network", "layer %d has %d outputs but %d biases", i, l.Outputs(), l.B.Len())
		}
		if i > 0 && layers[i-1].Outputs() != l.Inputs() {
			return nil, game.NewConfigError("network", "layer %d expects %d inputs but layer %d produces %d",
				i, l.Inputs(), i-1, layers[i-1].Outputs())
		}
	}
	o := newOptions(opts)
	copied := make([]Layer, len(layers))
	for i, l := range layers {
		copied[i] = Layer{W: mat.DenseCopyOf(l.W), B: mat.VecDenseCopyOf(l.B)}
	}
	return &Network{layers: copied, hidden: deep.GetActivation(o.hidden)}, nil
}

// Widths returns [w0 ... wn].
func (n *Network) Widths() []int {
	widths := []int{n.layers[0].Inputs()}
	for _, l := range n.layers {
		widths = append(widths, l.Outputs())
	}
	return widths
}

func (n *Network) InputWidth() int {
	return n.layers[0].Inputs()
}

func (n *Network) OutputWidth() int {
	return n.layers[len(n.layers)-1].Outputs()
}

// Forward runs x through every layer.
func (n *Network) Forward(x []float64) ([]float64, error) {
	if len(x) != n.InputWidth() {
		return nil, fmt.Errorf("network expects %d inputs, got %d", n.InputWidth(), len(x))
	}
	in := mat.NewVecDense(len(x), append([]float64(nil), x...))
	last := len(n.layers) - 1
	for i, l := range n.layers {
		out := mat.NewVecDense(l.Outputs(), nil)
		out.MulVec(l.W, in)
		out.AddVec(out, l.B)
		if i != last {
			for j := 0; j < out.Len(); j++ {
				out.SetVec(j, n.hidden.F(out.AtVec(j)))
			}
		}
		in = out
	}
	return in.RawVector().Data, nil
}
