package workspace

import (
	"context"
	"errors"

	"github.com/sourcegraph/conc/pool"

	"github.com/jhoicas/Catalogo-admin/internal/domain"
	"github.com/jhoicas/Catalogo-admin/internal/domain/entity"
	"github.com/jhoicas/Catalogo-admin/pkg/logger"
)

// Op bucket de guardado de una entidad.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// SaveReport resultado de un guardado: llamadas exitosas por bucket, filas nuevas descartadas
// sin llamada (nuevas y marcadas para borrar) y fallas por entidad.
type SaveReport struct {
	Created  int                    `json:"created"`
	Updated  int                    `json:"updated"`
	Deleted  int                    `json:"deleted"`
	Dropped  int                    `json:"dropped"`
	Failures []domain.EntityFailure `json:"failures,omitempty"`
}

// task una entidad a reconciliar: una o varias llamadas remotas que se aplican completas
// o se compensan.
type task struct {
	entity string
	op     Op
	run    func(ctx context.Context) error
}

type taskResult struct {
	task task
	err  error
}

// Save valida, clasifica cada entidad en Create/Update/Delete/NoOp, despacha las llamadas en
// paralelo y resincroniza baseline y copia de trabajo con el servidor. Todas las fallas se
// reúnen en un *domain.SaveError; nunca se corta en la primera.
//
// Un guardado en curso no se puede cancelar: la cancelación de ctx no interrumpe las llamadas.
func (e *Engine) Save(ctx context.Context) (SaveReport, error) {
	if !e.saving.CompareAndSwap(false, true) {
		return SaveReport{}, domain.ErrSaveInProgress
	}
	defer e.saving.Store(false)

	e.mu.Lock()
	if violations := e.validateLocked(); len(violations) > 0 {
		e.mu.Unlock()
		return SaveReport{}, &domain.ValidationError{Violations: violations}
	}
	tasks, dropped := e.planLocked()
	e.mu.Unlock()

	report := SaveReport{Dropped: dropped}
	if len(tasks) == 0 {
		if dropped > 0 {
			e.log.Debug().Int("dropped", dropped).Msg("filas nuevas descartadas sin llamada remota")
		}
		return report, nil
	}

	ctx = context.WithoutCancel(ctx)
	logPlan(e.log, tasks, dropped)

	for _, r := range e.dispatch(ctx, tasks) {
		if r.err != nil {
			report.Failures = append(report.Failures, domain.EntityFailure{
				Entity:  r.task.entity,
				Op:      string(r.task.op),
				Message: remoteMessage(r.err),
				Err:     r.err,
			})
			e.log.Warn().Err(r.err).Str("entity", r.task.entity).Str("op", string(r.task.op)).Msg("guardado fallido")
			continue
		}
		switch r.task.op {
		case OpCreate:
			report.Created++
		case OpUpdate:
			report.Updated++
		case OpDelete:
			report.Deleted++
		}
	}

	if err := e.Refresh(ctx); err != nil {
		e.log.Error().Err(err).Msg("no se pudo resincronizar tras guardar")
		report.Failures = append(report.Failures, domain.EntityFailure{
			Entity: "workspace", Op: "refresh", Message: remoteMessage(err), Err: err,
		})
	}

	if len(report.Failures) > 0 {
		return report, &domain.SaveError{Failures: report.Failures}
	}
	e.log.Info().Int("created", report.Created).Int("updated", report.Updated).
		Int("deleted", report.Deleted).Msg("guardado completo")
	return report, nil
}

// planLocked clasifica la copia de trabajo. Las filas nuevas marcadas para borrar se quitan
// aquí mismo, sin llamada remota.
func (e *Engine) planLocked() ([]task, int) {
	var (
		tasks   []task
		dropped int
	)

	keptProducts := e.workingProducts[:0:0]
	for _, p := range e.workingProducts {
		switch {
		case p.IsNew() && p.Deleted:
			dropped++
			continue
		case p.IsNew():
			tasks = append(tasks, e.createProductTask(p.Clone()))
		case p.Deleted:
			tasks = append(tasks, e.deleteProductTask(p.ID.Key()))
		default:
			if base, ok := e.baselineProduct(p.ID); ok && entity.ProductDirty(base, p) {
				tasks = append(tasks, e.updateProductTask(base.Clone(), p.Clone()))
			}
		}
		keptProducts = append(keptProducts, p)
	}
	e.workingProducts = keptProducts

	keptCategories := e.workingCategories[:0:0]
	for _, c := range e.workingCategories {
		switch {
		case c.IsNew() && c.Deleted:
			dropped++
			continue
		case c.IsNew():
			tasks = append(tasks, e.createCategoryTask(c.Clone()))
		case c.Deleted:
			tasks = append(tasks, e.deleteCategoryTask(c.ID.Key()))
		default:
			if base, ok := e.baselineCategory(c.ID); ok && entity.CategoryDirty(base, c) {
				tasks = append(tasks, e.updateCategoryTask(base.Clone(), c.Clone()))
			}
		}
		keptCategories = append(keptCategories, c)
	}
	e.workingCategories = keptCategories

	return tasks, dropped
}

// dispatch ejecuta todas las tareas en paralelo y espera a que terminen.
func (e *Engine) dispatch(ctx context.Context, tasks []task) []taskResult {
	p := pool.NewWithResults[taskResult]().WithMaxGoroutines(e.maxInFlight)
	for _, t := range tasks {
		t := t
		p.Go(func() taskResult {
			return taskResult{task: t, err: t.run(ctx)}
		})
	}
	return p.Wait()
}

// ── Productos ────────────────────────────────────────────────────────────────

func (e *Engine) createProductTask(p entity.Product) task {
	return task{
		entity: "product " + p.SKU,
		op:     OpCreate,
		run: func(ctx context.Context) error {
			return e.products.Create(ctx, p)
		},
	}
}

func (e *Engine) deleteProductTask(sku string) task {
	return task{
		entity: "product " + sku,
		op:     OpDelete,
		run: func(ctx context.Context) error {
			return e.products.Delete(ctx, sku)
		},
	}
}

// updateProductTask aplica el parche escalar y la sub-reconciliación de localizaciones.
// Altas y modificaciones van antes que las bajas para que el producto nunca quede sin
// localizaciones. Si una llamada falla se deshacen las anteriores en orden inverso.
func (e *Engine) updateProductTask(base, work entity.Product) task {
	sku := base.SKU
	patch := entity.DiffProduct(base, work)
	locs := entity.DiffLocalizations(base.Localizations, work.Localizations)
	label := "product " + sku

	return task{
		entity: label,
		op:     OpUpdate,
		run: func(ctx context.Context) error {
			tx := newCompensation(e.log, label)

			if !patch.IsEmpty() {
				if err := e.products.Update(ctx, sku, patch); err != nil {
					return tx.rollback(ctx, err)
				}
				undo := entity.RevertPatch(patch, base)
				tx.push("revert UpdateProduct", func(ctx context.Context) error {
					return e.products.Update(ctx, sku, undo)
				})
			}

			if len(locs.Added) > 0 {
				if err := e.products.AddLocalizations(ctx, sku, locs.Added); err != nil {
					return tx.rollback(ctx, err)
				}
				for _, l := range locs.Added {
					key := l.Key()
					tx.push("revert AddLocalizations "+key.String(), func(ctx context.Context) error {
						return e.products.RemoveLocalization(ctx, sku, key)
					})
				}
			}

			if len(locs.Updated) > 0 {
				if err := e.products.UpdateLocalizations(ctx, sku, locs.Updated); err != nil {
					return tx.rollback(ctx, err)
				}
				previous := locs.Previous
				tx.push("revert UpdateLocalizations", func(ctx context.Context) error {
					return e.products.UpdateLocalizations(ctx, sku, previous)
				})
			}

			for _, l := range locs.Removed {
				l := l
				if err := e.products.RemoveLocalization(ctx, sku, l.Key()); err != nil {
					return tx.rollback(ctx, err)
				}
				tx.push("revert RemoveLocalization "+l.Key().String(), func(ctx context.Context) error {
					return e.products.AddLocalizations(ctx, sku, []entity.Localization{l})
				})
			}
			return nil
		},
	}
}

// ── Categorías ───────────────────────────────────────────────────────────────

// createCategoryTask crea la categoría y sus traducciones; si una traducción falla la
// categoría se borra.
func (e *Engine) createCategoryTask(c entity.Category) task {
	label := "category " + c.Name
	return task{
		entity: label,
		op:     OpCreate,
		run: func(ctx context.Context) error {
			if err := e.categories.Create(ctx, c.Name); err != nil {
				return err
			}
			tx := newCompensation(e.log, label)
			tx.push("revert CreateCategory", func(ctx context.Context) error {
				return e.categories.Delete(ctx, c.Name)
			})
			for _, t := range c.Translations {
				if err := e.categories.UpsertTranslation(ctx, c.Name, t); err != nil {
					return tx.rollback(ctx, err)
				}
			}
			return nil
		},
	}
}

func (e *Engine) deleteCategoryTask(name string) task {
	return task{
		entity: "category " + name,
		op:     OpDelete,
		run: func(ctx context.Context) error {
			return e.categories.Delete(ctx, name)
		},
	}
}

// updateCategoryTask sub-reconciliación de traducciones por lang.
func (e *Engine) updateCategoryTask(base, work entity.Category) task {
	name := base.Name
	diff := entity.DiffTranslations(base.Translations, work.Translations)
	label := "category " + name

	return task{
		entity: label,
		op:     OpUpdate,
		run: func(ctx context.Context) error {
			tx := newCompensation(e.log, label)

			for _, t := range diff.Upserted {
				if err := e.categories.UpsertTranslation(ctx, name, t); err != nil {
					return tx.rollback(ctx, err)
				}
				if prev, ok := diff.Previous[t.Lang]; ok {
					tx.push("revert UpsertCategoryTranslation "+t.Lang, func(ctx context.Context) error {
						return e.categories.UpsertTranslation(ctx, name, prev)
					})
				} else {
					lang := t.Lang
					tx.push("revert UpsertCategoryTranslation "+lang, func(ctx context.Context) error {
						return e.categories.RemoveTranslation(ctx, name, lang)
					})
				}
			}

			for _, t := range diff.Removed {
				t := t
				if err := e.categories.RemoveTranslation(ctx, name, t.Lang); err != nil {
					return tx.rollback(ctx, err)
				}
				tx.push("revert RemoveCategoryTranslation "+t.Lang, func(ctx context.Context) error {
					return e.categories.UpsertTranslation(ctx, name, t)
				})
			}
			return nil
		},
	}
}

// ── Compensación ─────────────────────────────────────────────────────────────

type undoStep struct {
	name string
	fn   func(ctx context.Context) error
}

// compensation pila de llamadas que deshacen lo ya aplicado de una entidad.
type compensation struct {
	log    *logger.Logger
	entity string
	steps  []undoStep
}

func newCompensation(log *logger.Logger, entity string) *compensation {
	return &compensation{log: log, entity: entity}
}

func (c *compensation) push(name string, fn func(ctx context.Context) error) {
	c.steps = append(c.steps, undoStep{name: name, fn: fn})
}

// rollback deshace en orden inverso y devuelve cause. Una compensación fallida se registra;
// el refetch posterior muestra el estado real del servidor.
func (c *compensation) rollback(ctx context.Context, cause error) error {
	for i := len(c.steps) - 1; i >= 0; i-- {
		step := c.steps[i]
		if err := step.fn(ctx); err != nil {
			c.log.Error().Err(err).Str("entity", c.entity).Str("step", step.name).Msg("compensación fallida")
			continue
		}
		c.log.Debug().Str("entity", c.entity).Str("step", step.name).Msg("compensación aplicada")
	}
	return cause
}

// remoteMessage mensaje a mostrar: el del servidor tal cual si es un error de aplicación.
func remoteMessage(err error) string {
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) && gwErr.Kind == domain.KindApplication && gwErr.Message != "" {
		return gwErr.Message
	}
	return err.Error()
}

func logPlan(log *logger.Logger, tasks []task, dropped int) {
	counts := map[Op]int{}
	for _, t := range tasks {
		counts[t.op]++
	}
	log.Info().
		Int("create", counts[OpCreate]).
		Int("update", counts[OpUpdate]).
		Int("delete", counts[OpDelete]).
		Int("dropped", dropped).
		Msgf("guardando %d entidades", len(tasks))
}
