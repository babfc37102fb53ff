package model

import (
	"context"
	"strconv"
	"time"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

const DefaultTimeLayout string = time.RFC3339Nano

// AssignmentData is the payload an admin attaches to an assignment, for
// example the word of the day.
type AssignmentData struct {
	CustomWord            string `mapstructure:"custom_word" json:"custom_word,omitempty"`
	CustomWordDescription string `mapstructure:"custom_word_description" json:"custom_word_description,omitempty"`
}

func DecodeAssignmentData(data entity.Map) (AssignmentData, error) {
	var result AssignmentData
	if len(data) == 0 {
		return result, nil
	}

	err := mapstructure.Decode(map[string]any(data), &result)
	return result, err
}

func ConvertShortUser(user *entity.User) ShortUser {
	if user == nil {
		return ShortUser{}
	}

	return ShortUser{
		ID:           user.ID,
		Name:         user.Name,
		ProfileImage: user.ProfileImage,
	}
}

func ConvertQuest(quest *entity.Quest) *Quest {
	if quest == nil || quest.ID == "" {
		return nil
	}

	return &Quest{
		ID:             quest.ID,
		Title:          quest.Title,
		GameName:       quest.GameName,
		Description:    quest.Description,
		Cadence:        string(quest.Cadence),
		XPReward:       quest.XPReward,
		BananaReward:   quest.BananaReward,
		ProgressTarget: quest.ProgressTarget,
		IsActive:       quest.IsActive,
		CreatedBy:      quest.CreatedBy,
		CreatedAt:      quest.CreatedAt.Format(DefaultTimeLayout),
	}
}

// ConvertQuestAssignment serves an assignment whose payload cannot be decoded
// without its custom word.
func ConvertQuestAssignment(ctx context.Context, assignment *entity.QuestAssignment) *QuestAssignment {
	if assignment == nil || assignment.ID == "" {
		return nil
	}

	data, err := DecodeAssignmentData(assignment.Data)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode data of assignment %s: %v", assignment.ID, err)
	}

	return &QuestAssignment{
		ID:                    assignment.ID,
		QuestID:               assignment.QuestID,
		Quest:                 ConvertQuest(&assignment.Quest),
		StartDate:             assignment.StartDate,
		EndDate:               assignment.EndDate,
		AssignedBy:            assignment.AssignedBy.String,
		CustomWord:            data.CustomWord,
		CustomWordDescription: data.CustomWordDescription,
		CreatedAt:             assignment.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertQuestSlot(slot *entity.QuestSlot) QuestSlot {
	return QuestSlot{
		ID:          slot.ID,
		Date:        slot.Date,
		SlotNumber:  slot.SlotNumber,
		QuestID:     slot.QuestID,
		Quest:       ConvertQuest(&slot.Quest),
		HasRerolled: slot.HasRerolled,
		Completed:   slot.Completed,
	}
}

func ConvertQuestCompletion(ctx context.Context, completion *entity.QuestCompletion) QuestCompletion {
	result := QuestCompletion{
		ID:                completion.ID,
		UserID:            completion.UserID,
		QuestAssignmentID: completion.QuestAssignmentID,
		QuestAssignment:   ConvertQuestAssignment(ctx, &completion.QuestAssignment),
		QuestSlotID:       completion.QuestSlotID.String,
		Status:            string(completion.Status),
		Attachments:       completion.Attachments,
		XPEarned:          completion.XPEarned,
		BananasEarned:     completion.BananasEarned,
		ReviewerID:        completion.ReviewerID.String,
		CreatedAt:         completion.CreatedAt.Format(DefaultTimeLayout),
	}

	if result.Attachments == nil {
		result.Attachments = []string{}
	}

	if completion.ReviewedAt.Valid {
		result.ReviewedAt = completion.ReviewedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertRank(rank *entity.Rank) *Rank {
	if rank == nil {
		return nil
	}

	result := &Rank{
		ID:         rank.ID,
		Name:       rank.Name,
		MinXP:      rank.MinXP,
		BadgeColor: rank.BadgeColor,
		SortOrder:  rank.SortOrder,
	}

	if rank.MaxXP.Valid {
		maxXP := rank.MaxXP.Int64
		result.MaxXP = &maxXP
	}

	return result
}

func ConvertShopItem(item *entity.ShopItem) *ShopItem {
	if item == nil || item.ID == "" {
		return nil
	}

	result := &ShopItem{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		BananaCost:  item.BananaCost,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt.Format(DefaultTimeLayout),
	}

	if item.Stock.Valid {
		stock := item.Stock.Int64
		result.Stock = &stock
	}

	return result
}

func ConvertPurchase(purchase *entity.Purchase) Purchase {
	result := Purchase{
		ID:          purchase.ID,
		UserID:      purchase.UserID,
		ShopItemID:  purchase.ShopItemID,
		ShopItem:    ConvertShopItem(&purchase.ShopItem),
		BananaSpent: purchase.BananaSpent,
		VoucherCode: purchase.VoucherCode,
		Status:      string(purchase.Status),
		RedeemedBy:  purchase.RedeemedBy.String,
		CreatedAt:   purchase.CreatedAt.Format(DefaultTimeLayout),
	}

	if purchase.RedeemedAt.Valid {
		result.RedeemedAt = purchase.RedeemedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertBananaTransaction(tx *entity.BananaTransaction) BananaTransaction {
	return BananaTransaction{
		ID:         strconv.FormatInt(tx.ID, 10),
		Amount:     tx.Amount,
		SourceType: string(tx.SourceType),
		SourceID:   tx.SourceID,
		Note:       tx.Note,
		CreatedAt:  tx.CreatedAt.Format(DefaultTimeLayout),
	}
}
