package sqlinline

const QInsertPurchaseOrder = `--sql 02cf5c99-aad3-4fde-85d5-ddc5572513e1
insert into purchase_orders (order_id, receipt, uid, plan, amount, currency, status, created_at, updated_at)
values ($1::text, $2::text, $3::text, $4::text, $5::bigint, $6::text, 'created', now(), now());
`

const QSelectPurchaseOrder = `--sql 0cd21f25-225d-419b-814f-eb05367445eb
select order_id, receipt, uid, plan, amount, currency, status, coalesce(payment_id, ''), created_at, updated_at
from purchase_orders
where order_id = $1::text;
`

const QMarkPurchaseOrderPaid = `--sql 57a25c2b-20ec-4776-9492-5de30217a4d6
update purchase_orders
set status = 'paid',
    payment_id = $2::text,
    updated_at = now()
where order_id = $1::text
  and status <> 'paid';
`
