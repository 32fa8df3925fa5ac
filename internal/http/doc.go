// Package http provides HTTP handlers and middleware for the reservation API.
//
// The router exposes the following endpoints:
//   - POST /bookings, GET /bookings, GET /bookings/{id}, DELETE /bookings/{id}:
//     ad-hoc booking endpoints exchanging the `bookingDTO` payload defined in
//     booking_handler.go. Listing accepts `room_id` and `date` query filters;
//     ordinary callers always see only their own bookings.
//   - PUT /bookings/{id}/status: lifecycle transitions. Body: {"status"} with
//     one of pending, approved, rejected. Approval re-checks the slot and
//     answers 409 with a `conflicts_with` reference when it is already taken.
//   - POST /schedules, GET /schedules, PUT /schedules/{id}, DELETE /schedules/{id}:
//     recurring weekly schedule endpoints exchanging the `scheduleDTO` payload
//     defined in schedule_handler.go. Creation requires an elevated principal.
//   - GET /healthz: liveness probe, the only route served without a token.
//
// Every other route requires an `Authorization: Bearer` token minted by the
// identity collaborator. Request/response DTOs live alongside their respective
// handlers so tests and documentation share the same ground truth.
package http
