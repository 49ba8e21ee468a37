package cart

// Merge folds the anonymous session's cart into the account's cart. It is
// called once per successful login or registration.
//
// Rules:
//   - no guest cart: nothing to do (also what makes a retried merge a
//     no-op, since the guest cart row is deleted below)
//   - account has no cart: re-key the guest cart to the account instead of
//     copying lines
//   - both exist: quantities for a shared product are summed, and the
//     account line's price snapshot wins; guest-only lines move over
//     verbatim with their own snapshots. The guest cart row is then
//     deleted so it can never be merged or read again.
//
// The two-document sequence (update account cart, delete guest cart) is not
// transactional; a crash in between leaves an orphaned guest cart.
func (s *Service) Merge(accountID int, sessionID string) error {
	guest, err := s.repo.FindBySession(sessionID)
	if err == ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	account, err := s.repo.FindByAccount(accountID)
	if err == ErrNotFound {
		guest.AccountID = &accountID
		guest.SessionID = nil
		guest.UpdatedAt = now()
		_, err := s.repo.Update(guest)
		return err
	}
	if err != nil {
		return err
	}

	for _, guestLine := range guest.Items {
		if i := account.findLine(guestLine.ProductID); i >= 0 {
			account.Items[i].Quantity += guestLine.Quantity
		} else {
			account.Items = append(account.Items, guestLine)
		}
	}
	account.UpdatedAt = now()

	if _, err := s.repo.Update(account); err != nil {
		return err
	}
	return s.repo.Delete(guest.ID)
}
