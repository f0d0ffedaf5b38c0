package services

import (
	"strings"

	"saleedit/internal/core/domain/model/kernel"
	"saleedit/internal/core/domain/model/sale"
	"saleedit/internal/core/domain/model/stock"
	"saleedit/internal/pkg/errs"
)

// ShipmentCycle is the pair of transitions run on an outbound shipment after
// one of its moves changed, so that its inventory moves are rebuilt.
type ShipmentCycle int

const (
	// CycleNone leaves the shipment alone.
	CycleNone ShipmentCycle = iota
	// CycleDraftWait resets a waiting shipment to draft and waits again.
	CycleDraftWait
	// CycleWaitDraft waits a draft shipment and resets it to draft.
	CycleWaitDraft
)

// Run applies the cycle to shipment.
func (c ShipmentCycle) Run(shipment *stock.Shipment) error {
	switch c {
	case CycleDraftWait:
		if err := shipment.Draft(); err != nil {
			return err
		}
		return shipment.Wait()
	case CycleWaitDraft:
		if err := shipment.Wait(); err != nil {
			return err
		}
		return shipment.Draft()
	case CycleNone:
	}
	return nil
}

// LineEditPlan lists what has to happen around the base write of a line.
type LineEditPlan struct {
	// Move is the single move of a guarded line, nil otherwise
	Move       *stock.Move
	MoveValues stock.MoveValues

	// Shipment is the shipment Move belongs to
	Shipment *stock.Shipment
	Cycle    ShipmentCycle

	// InvalidateTotals is set when the order totals cache must be cleared
	InvalidateTotals bool
}

// Guarded reports whether the line guard applied to the write.
func (p LineEditPlan) Guarded() bool {
	return p.Move != nil
}

// LineEditGuard checks writes on lines. Lines of done or cancelled orders are
// read-only (field-locked). Lines of confirmed or processing orders that
// already have a move follow these rules, checked in this order:
//   - The line has a single move (multi-move-conflict)
//   - That move and every move of its shipment are draft (move-not-editable)
//   - Locked line fields are not changed (field-locked)
//
// Writes touching only housekeeping fields are never guarded.
type LineEditGuard struct {
	policy EditPolicy
}

func NewLineEditGuard(policy EditPolicy) LineEditGuard {
	return LineEditGuard{policy: policy}
}

// Check validates values for line of order. shipments are all the shipments
// and returns linked to the order.
func (g LineEditGuard) Check(
	order *sale.Order,
	line *sale.Line,
	shipments []*stock.Shipment,
	values sale.LineValues,
) (LineEditPlan, error) {
	if err := order.Validate(); err != nil {
		return LineEditPlan{}, err
	}
	if err := line.Validate(); err != nil {
		return LineEditPlan{}, err
	}

	if order.State().IsFinal() && !values.TouchesOnly(g.policy.housekeeping) {
		return LineEditPlan{}, errs.NewEditNotAllowedErrorWithDetail(
			errs.KindFieldLocked, line.RecName(), order.State().String()+" order")
	}

	plan := LineEditPlan{
		InvalidateTotals: values.HasAny(g.policy.totalsAffecting...) && order.CachedTotals().HasAny(),
	}

	if !order.State().In(sale.StateConfirmed, sale.StateProcessing) {
		return plan, nil
	}
	if values.TouchesOnly(g.policy.housekeeping) {
		return plan, nil
	}

	moves, owners := movesOfLine(line.ID(), shipments)
	if len(moves) == 0 {
		return plan, nil
	}
	if len(moves) > 1 {
		return LineEditPlan{}, errs.NewEditNotAllowedErrorWithDetail(
			errs.KindMultiMoveConflict, line.RecName(), "line has more than one move")
	}

	move, shipment := moves[0], owners[0]
	if !move.IsDraft() {
		return LineEditPlan{}, errs.NewEditNotAllowedErrorWithDetail(
			errs.KindMoveNotEditable, move.RecName(), string(move.State()))
	}
	for _, other := range shipment.AllMoves() {
		if !other.IsDraft() {
			return LineEditPlan{}, errs.NewEditNotAllowedErrorWithDetail(
				errs.KindMoveNotEditable, other.RecName(), string(other.State()))
		}
	}

	var locked []string
	for _, f := range values.Fields() {
		if sale.ContainsLineField(g.policy.lockedLineFields, f) {
			locked = append(locked, string(f))
		}
	}
	if len(locked) > 0 {
		return LineEditPlan{}, errs.NewEditNotAllowedErrorWithDetail(
			errs.KindFieldLocked, line.RecName(), strings.Join(locked, ", "))
	}

	plan.Move = move
	plan.MoveValues = g.mirror(values)
	plan.Shipment = shipment
	if shipment.Kind() == stock.ShipmentKindOut {
		switch shipment.State() {
		case stock.ShipmentStateWaiting:
			plan.Cycle = CycleDraftWait
		case stock.ShipmentStateDraft:
			plan.Cycle = CycleWaitDraft
		default:
		}
	}
	return plan, nil
}

func (g LineEditGuard) mirror(values sale.LineValues) stock.MoveValues {
	var mv stock.MoveValues
	for _, m := range g.policy.moveMirrors {
		switch m.Line {
		case sale.LineFieldProduct:
			mv.Product = values.Product
		case sale.LineFieldUnit:
			mv.UOM = values.Unit
		case sale.LineFieldQuantity:
			if values.Quantity != nil {
				mv.Quantity = kernel.DecimalPtr(kernel.AbsQuantity(*values.Quantity))
			}
		case sale.LineFieldUnitPrice:
			mv.UnitPrice = values.UnitPrice
		default:
		}
	}
	return mv
}

func movesOfLine(lineID kernel.UUID, shipments []*stock.Shipment) ([]*stock.Move, []*stock.Shipment) {
	var (
		moves  []*stock.Move
		owners []*stock.Shipment
	)
	for _, shipment := range shipments {
		for _, m := range shipment.MovesOfLine(lineID) {
			moves = append(moves, m)
			owners = append(owners, shipment)
		}
	}
	return moves, owners
}

// LineDeleteGuard checks line deletions.
type LineDeleteGuard struct{}

// Check rejects deleting a line of a processing, done or cancelled order and
// reports whether the order totals cache must be cleared.
func (LineDeleteGuard) Check(order *sale.Order, line *sale.Line) (bool, error) {
	if order.State().In(sale.StateProcessing, sale.StateDone, sale.StateCancelled) {
		return false, errs.NewEditNotAllowedErrorWithDetail(
			errs.KindDeleteNotAllowed, line.RecName(), order.State().String()+" order")
	}
	return order.CachedTotals().HasAny(), nil
}
