package embed

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// defaults match sentence-transformers/all-MiniLM-L6-v2
const (
	DefaultMaxSeqLen = 256
	DefaultOnnxDims  = 384
)

// OnnxConfig locates a sentence transformer exported to ONNX plus its tokenizer.json
type OnnxConfig struct {
	LibraryPath   string // onnxruntime shared library, empty uses the platform default
	ModelPath     string
	TokenizerPath string
	MaxSeqLen     int
	Dims          int
}

// Onnx runs a local transformer, mean pooled over the attention mask and L2 normalized
// a whole batch goes through a single session run
type Onnx struct {
	mu      sync.Mutex
	sess    *ort.DynamicAdvancedSession
	tok     *tokenizer.Tokenizer
	inputs  []string
	output  string
	maxLen  int
	dims    int
	modelID string
}

var (
	envMu   sync.Mutex
	envRefs int
)

func acquireEnv(libPath string) error {
	envMu.Lock()
	defer envMu.Unlock()
	if envRefs == 0 {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("embed: init onnxruntime: %w", err)
		}
	}
	envRefs++
	return nil
}

func releaseEnv() error {
	envMu.Lock()
	defer envMu.Unlock()
	if envRefs == 0 {
		return nil
	}
	envRefs--
	if envRefs == 0 {
		return ort.DestroyEnvironment()
	}
	return nil
}

// NewOnnx loads the tokenizer and opens an inference session
func NewOnnx(cfg OnnxConfig) (*Onnx, error) {
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, errors.New("embed: onnx provider requires model and tokenizer paths")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = DefaultMaxSeqLen
	}
	if cfg.Dims <= 0 {
		cfg.Dims = DefaultOnnxDims
	}

	tk, err := loadTokenizer(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("embed: load tokenizer: %w", err)
	}

	if err := acquireEnv(cfg.LibraryPath); err != nil {
		return nil, err
	}

	ins, outs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		_ = releaseEnv()
		return nil, fmt.Errorf("embed: inspect model: %w", err)
	}
	inputs, output, err := selectIO(ins, outs)
	if err != nil {
		_ = releaseEnv()
		return nil, err
	}

	sess, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, inputs, []string{output}, nil)
	if err != nil {
		_ = releaseEnv()
		return nil, fmt.Errorf("embed: open session: %w", err)
	}

	return &Onnx{
		sess:    sess,
		tok:     tk,
		inputs:  inputs,
		output:  output,
		maxLen:  cfg.MaxSeqLen,
		dims:    cfg.Dims,
		modelID: filepath.Base(cfg.ModelPath),
	}, nil
}

// loadTokenizer reads tokenizer.json with its padding block switched off
// padBatch pads per batch, so the mask has to cover real tokens only
func loadTokenizer(path string) (*tokenizer.Tokenizer, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, err
	}
	tk.WithPadding(nil)
	return tk, nil
}

// encodeIDs returns the ids of the tokens the tokenizer itself marks as attended
func encodeIDs(tk *tokenizer.Tokenizer, text string) ([]int64, error) {
	enc, err := tk.EncodeSingle(text, true)
	if err != nil {
		return nil, err
	}
	ids, mask := enc.GetIds(), enc.GetAttentionMask()
	out := make([]int64, 0, len(ids))
	for i, id := range ids {
		if i < len(mask) && mask[i] == 0 {
			continue
		}
		out = append(out, int64(id))
	}
	return out, nil
}

// selectIO keeps the BERT style inputs the model declares, in declared order
func selectIO(ins, outs []ort.InputOutputInfo) ([]string, string, error) {
	known := map[string]bool{"input_ids": true, "attention_mask": true, "token_type_ids": true}
	var inputs []string
	for _, in := range ins {
		if !known[in.Name] {
			return nil, "", fmt.Errorf("embed: unsupported model input %q", in.Name)
		}
		inputs = append(inputs, in.Name)
	}
	if len(inputs) == 0 || len(outs) == 0 {
		return nil, "", errors.New("embed: model declares no inputs or outputs")
	}
	output := outs[0].Name
	for _, o := range outs {
		if o.Name == "last_hidden_state" || o.Name == "token_embeddings" {
			output = o.Name
			break
		}
	}
	return inputs, output, nil
}

// Embed implements Embedder
func (o *Onnx) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	seqs := make([][]int64, len(texts))
	for i, t := range texts {
		ids, err := encodeIDs(o.tok, t)
		if err != nil {
			return nil, fmt.Errorf("embed: tokenize input %d: %w", i, err)
		}
		seqs[i] = truncate(ids, o.maxLen)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := padBatch(seqs)
	hidden, err := o.run(b)
	if err != nil {
		return nil, err
	}
	vecs := meanPool(hidden, b.mask, len(seqs), b.seqLen, o.dims)
	for _, v := range vecs {
		l2Normalize(v)
	}
	return vecs, nil
}

func (o *Onnx) run(b batch) ([]float32, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sess == nil {
		return nil, errors.New("embed: onnx session closed")
	}

	shape := ort.NewShape(int64(b.size), int64(b.seqLen))
	values := make([]ort.Value, 0, len(o.inputs))
	defer func() {
		for _, v := range values {
			_ = v.Destroy()
		}
	}()
	for _, name := range o.inputs {
		var data []int64
		switch name {
		case "input_ids":
			data = b.ids
		case "attention_mask":
			data = b.flatMask()
		case "token_type_ids":
			data = make([]int64, len(b.ids))
		}
		t, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("embed: build %s tensor: %w", name, err)
		}
		values = append(values, t)
	}

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(int64(b.size), int64(b.seqLen), int64(o.dims)))
	if err != nil {
		return nil, fmt.Errorf("embed: allocate output: %w", err)
	}
	defer func() { _ = out.Destroy() }()

	if err := o.sess.Run(values, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("embed: run session: %w", err)
	}
	hidden := make([]float32, len(out.GetData()))
	copy(hidden, out.GetData())
	return hidden, nil
}

// Dims implements Embedder
func (o *Onnx) Dims() int { return o.dims }

// Name implements Embedder
func (o *Onnx) Name() string { return "onnx:" + o.modelID }

// Close destroys the session and releases the shared runtime
func (o *Onnx) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.sess == nil {
		return nil
	}
	err := o.sess.Destroy()
	o.sess = nil
	if rerr := releaseEnv(); err == nil {
		err = rerr
	}
	return err
}

// batch is a right padded [size x seqLen] id matrix
type batch struct {
	size   int
	seqLen int
	ids    []int64
	mask   [][]int64
}

func (b batch) flatMask() []int64 {
	out := make([]int64, 0, b.size*b.seqLen)
	for _, m := range b.mask {
		out = append(out, m...)
	}
	return out
}

// padBatch right pads every sequence with id 0 to the longest one
func padBatch(seqs [][]int64) batch {
	longest := 1
	for _, s := range seqs {
		if len(s) > longest {
			longest = len(s)
		}
	}
	b := batch{
		size:   len(seqs),
		seqLen: longest,
		ids:    make([]int64, len(seqs)*longest),
		mask:   make([][]int64, len(seqs)),
	}
	for i, s := range seqs {
		copy(b.ids[i*longest:], s)
		m := make([]int64, longest)
		for j := range s {
			m[j] = 1
		}
		b.mask[i] = m
	}
	return b
}

// truncate caps a special token wrapped sequence at max, keeping the closing token
func truncate(ids []int64, max int) []int64 {
	if max <= 1 || len(ids) <= max {
		return ids
	}
	out := make([]int64, max)
	copy(out, ids[:max-1])
	out[max-1] = ids[len(ids)-1]
	return out
}

// meanPool averages token states where mask is set
// hidden is laid out [size][seqLen][dims]
func meanPool(hidden []float32, mask [][]int64, size, seqLen, dims int) [][]float32 {
	out := make([][]float32, size)
	for i := 0; i < size; i++ {
		v := make([]float32, dims)
		var n float32
		for j := 0; j < seqLen; j++ {
			if mask[i][j] == 0 {
				continue
			}
			n++
			row := hidden[(i*seqLen+j)*dims : (i*seqLen+j+1)*dims]
			for k, x := range row {
				v[k] += x
			}
		}
		if n > 0 {
			for k := range v {
				v[k] /= n
			}
		}
		out[i] = v
	}
	return out
}
