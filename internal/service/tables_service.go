package service

import (
	"vconnect/internal/repository"
)

type TablesService interface {
	GetCountTablesBD() (int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (s *tablesService) GetCountTablesBD() (int, error) {
	count, err := s.tablesRepo.CountTablesDB()
	if err != nil {
		return 0, err
	}

	return count, nil
}
