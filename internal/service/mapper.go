package service

import (
	"freelance-market-api/internal/entity"

	"github.com/google/uuid"
)

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}

	return id.String()
}

func mapProject(p *entity.Project) *entity.ProjectOutputModel {
	return &entity.ProjectOutputModel{
		Id:                 p.Id.String(),
		CustomerId:         p.CustomerId.String(),
		Title:              p.Title,
		Description:        p.Description,
		Status:             string(p.Status),
		Budget:             p.Budget.String(),
		PaymentType:        string(p.PaymentType),
		Deadline:           p.Deadline,
		FreelancerId:       uuidString(p.FreelancerId),
		AcceptedProposalId: uuidString(p.AcceptedProposalId),
		ContractId:         uuidString(p.ContractId),
		CreatedAt:          p.CreatedAt,
	}
}

func mapProjects(projects []entity.Project) []entity.ProjectOutputModel {
	s := make([]entity.ProjectOutputModel, 0)
	for _, p := range projects {
		s = append(s, *mapProject(&p))
	}

	return s
}

func mapProposal(p *entity.Proposal) *entity.ProposalOutputModel {
	return &entity.ProposalOutputModel{
		Id:               p.Id.String(),
		ProjectId:        p.ProjectId.String(),
		FreelancerId:     p.FreelancerId.String(),
		Status:           string(p.Status),
		Amount:           p.Amount.String(),
		CoverLetter:      p.CoverLetter,
		PlannedStartDate: p.PlannedStartDate,
		PlannedEndDate:   p.PlannedEndDate,
		CreatedAt:        p.CreatedAt,
	}
}

func mapProposals(proposals []entity.Proposal) []entity.ProposalOutputModel {
	s := make([]entity.ProposalOutputModel, 0)
	for _, p := range proposals {
		s = append(s, *mapProposal(&p))
	}

	return s
}

func mapContract(c *entity.Contract) *entity.ContractOutputModel {
	return &entity.ContractOutputModel{
		Id:               c.Id.String(),
		ProjectId:        c.ProjectId.String(),
		ProposalId:       c.ProposalId.String(),
		CustomerId:       c.CustomerId.String(),
		FreelancerId:     c.FreelancerId.String(),
		Status:           string(c.Status),
		Amount:           c.Amount.String(),
		TotalPaid:        c.TotalPaid.String(),
		RemainingBalance: c.RemainingBalance.String(),
		PaymentStatus:    string(c.PaymentStatus),
		PaymentType:      string(c.PaymentType),
		StartDate:        c.StartDate,
		EndDate:          c.EndDate,
		CompletedAt:      c.CompletedAt,
		TerminatedAt:     c.TerminatedAt,
		CreatedAt:        c.CreatedAt,
	}
}

func mapContracts(contracts []entity.Contract) []entity.ContractOutputModel {
	s := make([]entity.ContractOutputModel, 0)
	for _, c := range contracts {
		s = append(s, *mapContract(&c))
	}

	return s
}

func mapMilestone(m *entity.Milestone) *entity.MilestoneOutputModel {
	return &entity.MilestoneOutputModel{
		Id:               m.Id.String(),
		ContractId:       m.ContractId.String(),
		Title:            m.Title,
		Status:           string(m.Status),
		PaymentStatus:    string(m.PaymentStatus),
		Amount:           m.Amount.String(),
		PenaltyAmount:    m.PenaltyAmount.String(),
		BonusAmount:      m.BonusAmount.String(),
		PlannedStartDate: m.PlannedStartDate,
		PlannedEndDate:   m.PlannedEndDate,
		ActualStartDate:  m.ActualStartDate,
		ActualEndDate:    m.ActualEndDate,
		CreatedAt:        m.CreatedAt,
	}
}

func mapMilestones(milestones []entity.Milestone) []entity.MilestoneOutputModel {
	s := make([]entity.MilestoneOutputModel, 0)
	for _, m := range milestones {
		s = append(s, *mapMilestone(&m))
	}

	return s
}

func mapInvoice(i *entity.Invoice) *entity.InvoiceOutputModel {
	return &entity.InvoiceOutputModel{
		Id:          i.Id.String(),
		ContractId:  i.ContractId.String(),
		MilestoneId: uuidString(i.MilestoneId),
		PaymentId:   uuidString(i.PaymentId),
		Status:      string(i.Status),
		Amount:      i.Amount.String(),
		IssuedAt:    i.IssuedAt,
		DueDate:     i.DueDate,
		CreatedAt:   i.CreatedAt,
	}
}

func mapInvoices(invoices []entity.Invoice) []entity.InvoiceOutputModel {
	s := make([]entity.InvoiceOutputModel, 0)
	for _, i := range invoices {
		s = append(s, *mapInvoice(&i))
	}

	return s
}

func mapPayment(p *entity.Payment) *entity.PaymentOutputModel {
	return &entity.PaymentOutputModel{
		Id:        p.Id.String(),
		InvoiceId: p.InvoiceId.String(),
		Status:    string(p.Status),
		Amount:    p.Amount.String(),
		PaidAt:    p.PaidAt,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}
