package purchasing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/erp-comercial/internal/application/dto"
	"github.com/jhoicas/erp-comercial/internal/application/ports"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/codegen"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/rs/zerolog"
)

// notaDir subdiretório (dentro de UPLOAD_DIR) das notas de compra.
const notaDir = "compras"

var errNoFileStore = errors.New("armazenamento de arquivos não configurado")

var allowedNotaExt = map[string]bool{".pdf": true, ".png": true, ".jpg": true, ".jpeg": true}

// UseCase ciclo de vida das compras: cadastro, aprovação e nota fiscal.
type UseCase struct {
	tx    repository.TxRunner
	repo  repository.PurchaseOrderRepository
	files ports.FileStore
	cache ports.Cache
	codes *codegen.Generator
	log   zerolog.Logger
	now   func() time.Time
}

// NewUseCase constrói o caso de uso de compras. files e cache podem ser nil.
func NewUseCase(
	tx repository.TxRunner,
	repo repository.PurchaseOrderRepository,
	files ports.FileStore,
	cache ports.Cache,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:    tx,
		repo:  repo,
		files: files,
		cache: cache,
		codes: codegen.New(),
		log:   log,
		now:   time.Now,
	}
}

// WithClock troca o relógio (testes).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// WithCodes troca o gerador de códigos (testes).
func (uc *UseCase) WithCodes(g *codegen.Generator) *UseCase {
	uc.codes = g
	return uc
}

func parseCompra(in dto.CompraRequest) (entity.PurchaseOrder, error) {
	if strings.TrimSpace(in.ProductID) == "" || strings.TrimSpace(in.SupplierID) == "" || strings.TrimSpace(in.LocationID) == "" {
		return entity.PurchaseOrder{}, fmt.Errorf("%w: produto, fornecedor e local são obrigatórios", domain.ErrInvalidInput)
	}
	if !entity.ValidUnit(in.Unit) {
		return entity.PurchaseOrder{}, fmt.Errorf("%w: unidade de medida inválida", domain.ErrInvalidInput)
	}
	qty, err := domain.ParseQuantity("quantidade", in.Quantity)
	if err != nil {
		return entity.PurchaseOrder{}, err
	}
	return entity.PurchaseOrder{
		ProductID:  in.ProductID,
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
		Quantity:   qty,
		Unit:       in.Unit,
		HasInvoice: in.HasInvoice,
	}, nil
}

// Create registra uma compra pendente com código de 6 dígitos.
func (uc *UseCase) Create(ctx context.Context, in dto.CompraRequest) (*dto.CodeResponse, error) {
	po, err := parseCompra(in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	po.ID = uuid.NewString()
	po.Status = entity.PurchasePending
	po.CreatedAt, po.UpdatedAt = now, now

	err = codegen.RetryOnConflict(func() error {
		code, err := uc.codes.Next(ctx, uc.repo.CodeExists)
		if err != nil {
			return err
		}
		po.Code = code
		return uc.repo.Create(ctx, &po)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("compra_id", po.ID).Str("codigo", po.Code).Msg("compra criada")
	return &dto.CodeResponse{ID: po.ID, Codigo: po.Code}, nil
}

// Update altera os dados de uma compra ainda pendente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CompraRequest) (*dto.CompraResponse, error) {
	upd, err := parseCompra(in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(r repository.TxRepos) error {
		po, err := uc.lock(ctx, r, id)
		if err != nil {
			return err
		}
		if !po.CanEdit() {
			return fmt.Errorf("%w: apenas compras pendentes podem ser editadas", domain.ErrInvalidState)
		}
		po.ProductID, po.SupplierID, po.LocationID = upd.ProductID, upd.SupplierID, upd.LocationID
		po.Quantity, po.Unit, po.HasInvoice = upd.Quantity, upd.Unit, upd.HasInvoice
		po.UpdatedAt = uc.now()
		return r.PurchaseOrders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete exclui compras pendentes ou reprovadas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(r repository.TxRepos) error {
		po, err := uc.lock(ctx, r, id)
		if err != nil {
			return err
		}
		if !po.CanDelete() {
			return fmt.Errorf("%w: compras aprovadas ou entregues não podem ser excluídas", domain.ErrInvalidState)
		}
		return r.PurchaseOrders.Delete(ctx, id)
	})
}

// Get devolve a compra com nomes resolvidos.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.CompraResponse, error) {
	v, err := uc.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%w: compra não encontrada", domain.ErrNotFound)
	}
	out := toCompraResponse(*v)
	return &out, nil
}

// List lista compras, mais recentes primeiro.
func (uc *UseCase) List(ctx context.Context, in dto.CompraListRequest) ([]dto.CompraResponse, error) {
	views, err := uc.repo.List(ctx, repository.PurchaseOrderFilter{
		Status:     in.Status,
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompraResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toCompraResponse(v))
	}
	return out, nil
}

// Approve move pendente -> aprovado e credita a quantidade no estoque do local
// de destino, na mesma transação.
func (uc *UseCase) Approve(ctx context.Context, id string) error {
	var po *entity.PurchaseOrder
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		var err error
		po, err = uc.lock(ctx, r, id)
		if err != nil {
			return err
		}
		if err := po.Approve(uc.now()); err != nil {
			return err
		}
		if err := r.PurchaseOrders.UpdateStatus(ctx, po); err != nil {
			return err
		}
		_, err = r.Stock.Adjust(ctx, po.ProductID, po.LocationID, po.Quantity)
		return err
	})
	if err != nil {
		return err
	}
	if uc.cache != nil {
		if err := uc.cache.Bump(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("invalidar cache do PDV")
		}
	}
	uc.log.Info().
		Str("compra_id", po.ID).
		Str("codigo", po.Code).
		Str("quantity", po.Quantity.String()).
		Msg("compra aprovada")
	return nil
}

// Reject move pendente -> reprovado sem tocar no estoque.
func (uc *UseCase) Reject(ctx context.Context, id string) error {
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		po, err := uc.lock(ctx, r, id)
		if err != nil {
			return err
		}
		if err := po.Reject(uc.now()); err != nil {
			return err
		}
		return r.PurchaseOrders.UpdateStatus(ctx, po)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("compra_id", id).Msg("compra reprovada")
	return nil
}

// UploadNota grava o arquivo da nota como compras/<id><ext> e marca tem_nota.
func (uc *UseCase) UploadNota(ctx context.Context, id, fileName string, content io.Reader) (*dto.CompraResponse, error) {
	if uc.files == nil {
		return nil, errNoFileStore
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedNotaExt[ext] {
		return nil, fmt.Errorf("%w: Tipo de arquivo não permitido. Use PDF ou imagem.", domain.ErrInvalidInput)
	}
	po, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: compra não encontrada", domain.ErrNotFound)
	}

	url, err := uc.files.Save(ctx, notaDir, po.ID+ext, content)
	if err != nil {
		return nil, fmt.Errorf("salvar nota: %w", err)
	}
	po.HasInvoice = true
	po.InvoiceFileURL = url
	po.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, po); err != nil {
		return nil, err
	}
	uc.log.Info().Str("compra_id", po.ID).Str("url", url).Msg("nota da compra anexada")
	return uc.Get(ctx, id)
}

func (uc *UseCase) lock(ctx context.Context, r repository.TxRepos, id string) (*entity.PurchaseOrder, error) {
	po, err := r.PurchaseOrders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: compra não encontrada", domain.ErrNotFound)
	}
	return po, nil
}

func toCompraResponse(v entity.PurchaseOrderView) dto.CompraResponse {
	return dto.CompraResponse{
		ID:           v.ID,
		Codigo:       v.Code,
		ProductID:    v.ProductID,
		ProductCode:  entity.DisplayCode(v.GroupCode, v.SubgroupCode, v.ProductCode),
		ProductName:  v.ProductName,
		SupplierID:   v.SupplierID,
		SupplierName: v.SupplierName,
		LocationID:   v.LocationID,
		LocationName: v.LocationName,
		Quantity:     v.Quantity.String(),
		Unit:         v.Unit,
		HasInvoice:   v.HasInvoice,
		NotaFileURL:  v.InvoiceFileURL,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
