package dto

// LayerRequest - слой из пути запроса
type LayerRequest struct {
	Layer string `params:"layer" validate:"required,layer"`
}

// RunCountsRequest - счетчики слоя из архивного прогона
type RunCountsRequest struct {
	RunID string `params:"id" validate:"required,uuid"`
	Layer string `params:"layer" validate:"required,layer"`
}

// RunsRequest - запрос истории прогонов
type RunsRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
