// Package docs Tourist Map API.
//
// Геоданные для карты туристических мест: регионы с количеством опубликованных мест,
// места региона и поиск мест в радиусе от точки.
//
// Основные возможности:
// - Список регионов, в которых есть опубликованные места
// - Места региона (до 50) с главным изображением
// - Места в радиусе с расстоянием, по возрастанию расстояния
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
