package session

import (
	"github.com/Zachkp/portfolio/internal/pipeline"
	"github.com/Zachkp/portfolio/internal/radar"
)

// Components is what every new view is built from.
type Components struct {
	Stages       []pipeline.Stage
	Skills       []radar.MetricPoint
	PipelineOpts []pipeline.Option
	RendererOpts []radar.RendererOption
}

// Factory returns a Factory building a fresh simulator and renderer per view.
func (c Components) Factory() Factory {
	return func(id string) (*View, error) {
		sim, err := pipeline.New(c.Stages, c.PipelineOpts...)
		if err != nil {
			return nil, err
		}
		return &View{
			ID:       id,
			Pipeline: sim,
			Radar:    radar.NewRenderer(c.Skills, c.RendererOpts...),
		}, nil
	}
}
