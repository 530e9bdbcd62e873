package radio

import (
	"context"
	"errors"

	"github.com/IceNet-01/Mesh-Bridge-GUI-sub001/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Register(ctx context.Context, input Radio) (Radio, error) {
	if input.NodeID == "" || input.Name == "" {
		return Radio{}, errors.New("node_id and name required")
	}
	if input.Kind != KindBase && input.Kind != KindHandheld {
		return Radio{}, errors.New("kind must be base or handheld")
	}

	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO radios (id, node_id, name, kind, location, notes)
		VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7)
		RETURNING created_at
	`, input.ID, input.NodeID, input.Name, input.Kind, input.Lng, input.Lat, input.Notes)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Radio{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (Radio, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, node_id, name, kind, ST_Y(location::geometry), ST_X(location::geometry), COALESCE(notes,''), created_at
		FROM radios WHERE id=$1
	`, id)
	var r Radio
	if err := row.Scan(&r.ID, &r.NodeID, &r.Name, &r.Kind, &r.Lat, &r.Lng, &r.Notes, &r.CreatedAt); err != nil {
		return Radio{}, err
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Radio) (Radio, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return Radio{}, err
	}
	if patch.Name != "" {
		r.Name = patch.Name
	}
	if patch.Kind != "" {
		if patch.Kind != KindBase && patch.Kind != KindHandheld {
			return Radio{}, errors.New("kind must be base or handheld")
		}
		r.Kind = patch.Kind
	}
	if patch.Lat != 0 {
		r.Lat = patch.Lat
	}
	if patch.Lng != 0 {
		r.Lng = patch.Lng
	}
	if patch.Notes != "" {
		r.Notes = patch.Notes
	}

	_, err = s.db.Exec(ctx, `
		UPDATE radios
		SET name=$2, kind=$3,
		    location=ST_SetSRID(ST_MakePoint($4,$5), 4326)::geography,
		    notes=$6
		WHERE id=$1
	`, r.ID, r.Name, r.Kind, r.Lng, r.Lat, r.Notes)
	if err != nil {
		return Radio{}, err
	}
	return r, nil
}

func (s *Service) List(ctx context.Context) ([]Radio, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, node_id, name, kind, ST_Y(location::geometry), ST_X(location::geometry), COALESCE(notes,''), created_at
		FROM radios
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var radios []Radio
	for rows.Next() {
		var r Radio
		if err := rows.Scan(&r.ID, &r.NodeID, &r.Name, &r.Kind, &r.Lat, &r.Lng, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		radios = append(radios, r)
	}
	return radios, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM radios WHERE id=$1`, id)
	return err
}
