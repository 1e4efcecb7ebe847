package funcs

import (
	"github.com/sarchlab/mcrecipe/csvcache"
	"github.com/sarchlab/mcrecipe/errkind"
	"github.com/sarchlab/mcrecipe/registry"
	"github.com/sarchlab/mcrecipe/value"
)

// RegisterCSV installs read_csv_vector and read_csv_scalar (spec
// §4.4.5), backed by the shared process-wide cache. These are
// expected to run only in the pre-trial phase (spec §4.4.5), the
// engine package's single-threaded pre-trial runner.
func RegisterCSV(r *registry.Registry, cache *csvcache.Cache) {
	r.Register("read_csv_vector", func() registry.Executable { return readCsvVectorOp{cache: cache} })
	r.Register("read_csv_scalar", func() registry.Executable { return readCsvScalarOp{cache: cache} })
}

type readCsvVectorOp struct {
	cache *csvcache.Cache
}

func (o readCsvVectorOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 2 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 2 arguments, got %d", len(args))
	}
	path, err := args[0].AsString()
	if err != nil {
		return nil, err
	}
	column, err := args[1].AsString()
	if err != nil {
		return nil, err
	}
	table, err := o.cache.Get(path)
	if err != nil {
		return nil, err
	}
	values, err := table.FloatColumn(column)
	if err != nil {
		return nil, err
	}
	return []value.Value{value.VectorOf(values)}, nil
}

type readCsvScalarOp struct {
	cache *csvcache.Cache
}

func (o readCsvScalarOp) Execute(_ *registry.Env, args []value.Value) ([]value.Value, error) {
	if len(args) != 3 {
		return nil, errkind.New(errkind.IncorrectArgumentCount, "expected 3 arguments, got %d", len(args))
	}
	path, err := args[0].AsString()
	if err != nil {
		return nil, err
	}
	column, err := args[1].AsString()
	if err != nil {
		return nil, err
	}
	rowV, err := args[2].AsScalar()
	if err != nil {
		return nil, err
	}
	table, err := o.cache.Get(path)
	if err != nil {
		return nil, err
	}
	scalar, err := table.FloatCell(int(rowV), column)
	if err != nil {
		return nil, err
	}
	return []value.Value{value.Scalar(scalar)}, nil
}
