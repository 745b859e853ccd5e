package response

import "solosolver-be/internal/entity"

const (
	askForDetailsTemplate = "Hello, and thank you for reaching out. To help you properly, could you tell us a little more " +
		"about the problem? Please include the product, your order details and what went wrong. " +
		"We will take it from there.\n\nKind regards,\nCustomer Support"

	sizingTemplate = "Dear Customer,\n\nWe are sorry the item did not fit as expected. We would be happy to arrange " +
		"an exchange for a different size. Please reply with the size you need and we will send the " +
		"exchange instructions.\n\nKind regards,\nCustomer Support"

	damageTemplate = "Dear Customer,\n\nWe sincerely apologize that your item arrived damaged. Please return the " +
		"damaged item using the prepaid label we will send you, and we will issue a full refund as soon " +
		"as it is received. If you prefer a replacement instead, just let us know.\n\nKind regards,\nCustomer Support"

	shippingTemplate = "Dear Customer,\n\nWe are sorry for the trouble with your delivery. We are checking the " +
		"shipment status with the carrier. Could you confirm your order number and shipping address so we " +
		"can resolve this quickly?\n\nKind regards,\nCustomer Support"

	clarificationTemplate = "Dear Customer,\n\nThank you for contacting us, and we are sorry for the inconvenience. " +
		"To look into this, could you share a few more details, such as the product name, your order " +
		"number and a short description of the issue?\n\nKind regards,\nCustomer Support"

	genericTemplate = "Dear Customer,\n\nThank you for contacting us, and we are sorry for the inconvenience. " +
		"Our support team is reviewing your request and will follow up with the next steps shortly.\n\n" +
		"Kind regards,\nCustomer Support"
)

// Template returns the static reply used when the generator is unavailable.
func Template(branch Branch, category entity.ComplaintCategory) string {
	if branch == BranchAskForDetails {
		return askForDetailsTemplate
	}

	switch category {
	case entity.CategorySizingIssue:
		return sizingTemplate
	case entity.CategoryDamagedItem:
		return damageTemplate
	case entity.CategoryShippingProblem, entity.CategoryLateDelivery:
		return shippingTemplate
	}

	if branch == BranchClarification {
		return clarificationTemplate
	}
	return genericTemplate
}
